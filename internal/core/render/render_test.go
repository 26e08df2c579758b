package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// MockOpener implements driven.URLOpener for testing.
type MockOpener struct {
	Opened   []string
	OpenFunc func(url string)
}

func (m *MockOpener) Open(url string) {
	m.Opened = append(m.Opened, url)
	if m.OpenFunc != nil {
		m.OpenFunc(url)
	}
}

func fullPreview() *domain.PreviewData {
	return &domain.PreviewData{
		Link:        "https://example.com/post",
		Title:       "A post",
		Description: "About things",
		Domain:      "example.com",
		Image:       &domain.PreviewImage{URL: "https://example.com/cover.png", Width: 200, Height: 100},
	}
}

func TestRender_Invisible_ReturnsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data *domain.PreviewData
	}{
		{"nil state", nil},
		{"empty data", &domain.PreviewData{}},
		{"link only", &domain.PreviewData{Link: "https://example.com"}},
		{"image only", &domain.PreviewData{Image: &domain.PreviewImage{URL: "u", Width: 1, Height: 1}}},
		{"link and domain under strict", &domain.PreviewData{Link: "https://example.com", Domain: "example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := &MockOpener{}
			node := Render(tt.data, Options{Opener: opener})

			assert.True(t, node.IsEmpty())
			assert.Equal(t, KindEmpty, node.Kind)
			assert.Nil(t, node.OnPress)
			assert.Empty(t, node.Children)
		})
	}
}

func TestRender_Visible_IsPressableButton(t *testing.T) {
	node := Render(&domain.PreviewData{Title: "Only a title"}, Options{})

	require.Equal(t, KindPressable, node.Kind)
	assert.Equal(t, "button", node.Role)
	assert.NotNil(t, node.OnPress)
	require.Len(t, node.Children, 1)
	assert.Equal(t, RegionCard, node.Children[0].Attr(AttrRegion))
}

func TestRender_DescriptionOnlyIsVisible(t *testing.T) {
	node := Render(&domain.PreviewData{Description: "just a description"}, Options{})

	require.False(t, node.IsEmpty())
	assert.Nil(t, node.FindRegion(RegionTitle))
	require.NotNil(t, node.FindRegion(RegionDescription))
	assert.Equal(t, "just a description", node.FindRegion(RegionDescription).Text)
}

func TestRender_DefaultCardStructure(t *testing.T) {
	node := Render(fullPreview(), Options{})

	card := node.FindRegion(RegionCard)
	require.NotNil(t, card)
	assert.Equal(t, "grey6", card.Style.Get("background"))

	metadata := node.FindRegion(RegionMetadata)
	require.NotNil(t, metadata)
	assert.Equal(t, "row", metadata.Style.Get("flexDirection"))
	assert.Equal(t, "12", metadata.Style.Get("padding"))
	require.Len(t, metadata.Children, 2)
	assert.Equal(t, KindImage, metadata.Children[0].Kind)
	assert.Equal(t, RegionTextColumn, metadata.Children[1].Attr(AttrRegion))

	title := node.FindRegion(RegionTitle)
	require.NotNil(t, title)
	assert.Equal(t, "A post", title.Text)
	assert.Equal(t, 2, title.MaxLines)

	description := node.FindRegion(RegionDescription)
	require.NotNil(t, description)
	assert.Equal(t, "About things", description.Text)
	assert.Equal(t, 3, description.MaxLines)
}

func TestRender_NoImageRegionWithoutImage(t *testing.T) {
	data := fullPreview()
	data.Image = nil

	node := Render(data, Options{})

	assert.Nil(t, node.FindRegion(RegionImage))
	metadata := node.FindRegion(RegionMetadata)
	require.NotNil(t, metadata)
	assert.Len(t, metadata.Children, 1)
}

func TestRender_ImageBox(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		want          Box
	}{
		{"landscape", 200, 100, Box{Width: ContainerWidth, Height: ContainerWidth / 2}},
		{"portrait", 100, 200, Box{Width: ContainerWidth / 2, Height: ContainerWidth}},
		{"square", 80, 80, Box{Width: ContainerWidth, Height: ContainerWidth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := fullPreview()
			data.Image = &domain.PreviewImage{URL: "https://example.com/i.png", Width: tt.width, Height: tt.height}

			image := Render(data, Options{}).FindRegion(RegionImage)

			require.NotNil(t, image)
			assert.Equal(t, tt.want, image.Box)
			assert.Equal(t, "https://example.com/i.png", image.Source)
			assert.Equal(t, "image", image.Role)
			assert.Equal(t, "contain", image.Attr("resizeMode"))
		})
	}
}

func TestImageBox(t *testing.T) {
	assert.Equal(t, Box{Width: 60, Height: 30}, ImageBox(2))
	assert.Equal(t, Box{Width: 30, Height: 60}, ImageBox(0.5))
	assert.Equal(t, Box{Width: 60, Height: 60}, ImageBox(1))
	assert.Equal(t, Box{Width: 60, Height: 60}, ImageBox(0), "degenerate ratio is treated as square")
	assert.Equal(t, Box{Width: 60, Height: 60}, ImageBox(math.NaN()))
}

func TestAspectRatioOf(t *testing.T) {
	assert.Equal(t, 2.0, AspectRatioOf(fullPreview()))
	assert.Equal(t, 1.0, AspectRatioOf(&domain.PreviewData{Title: "x"}))
	assert.Equal(t, 1.0, AspectRatioOf(nil))
}

func TestRender_OverrideImage_KeepsDefaultText(t *testing.T) {
	var received domain.PreviewImage
	opts := Options{
		Overrides: Overrides{
			Image: func(img domain.PreviewImage) *Node {
				received = img
				return &Node{Kind: KindText, Text: "[img]", Attrs: map[string]string{"custom": "image"}}
			},
		},
	}

	node := Render(fullPreview(), opts)

	assert.Equal(t, "https://example.com/cover.png", received.URL)
	assert.NotNil(t, node.Find(func(n *Node) bool { return n.Attr("custom") == "image" }))
	assert.Nil(t, node.FindRegion(RegionImage))

	title := node.FindRegion(RegionTitle)
	require.NotNil(t, title)
	assert.Equal(t, "A post", title.Text)
	assert.Equal(t, TitleMaxLines, title.MaxLines)
	description := node.FindRegion(RegionDescription)
	require.NotNil(t, description)
	assert.Equal(t, "About things", description.Text)
}

func TestRender_OverrideTitleAndDescription(t *testing.T) {
	opts := Options{
		Overrides: Overrides{
			Title:       func(s string) *Node { return &Node{Kind: KindText, Text: "T:" + s} },
			Description: func(s string) *Node { return &Node{Kind: KindText, Text: "D:" + s} },
		},
	}

	node := Render(fullPreview(), opts)

	column := node.FindRegion(RegionTextColumn)
	require.NotNil(t, column)
	require.Len(t, column.Children, 2)
	assert.Equal(t, "T:A post", column.Children[0].Text)
	assert.Equal(t, "D:About things", column.Children[1].Text)
	assert.NotNil(t, node.FindRegion(RegionImage), "image keeps its default renderer")
}

func TestRender_OverrideCard(t *testing.T) {
	var payload CardPayload
	opts := Options{
		Overrides: Overrides{
			Card: func(p CardPayload) *Node {
				payload = p
				return &Node{Kind: KindText, Text: "custom card"}
			},
		},
	}
	data := fullPreview()

	node := Render(data, opts)

	require.Equal(t, KindPressable, node.Kind)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "custom card", node.Children[0].Text)
	assert.Equal(t, 2.0, payload.AspectRatio)
	assert.True(t, payload.HasAspectRatio)
	assert.Equal(t, ContainerWidth, payload.ContainerWidth)
	assert.Same(t, data, payload.PreviewData)
}

func TestRender_OverrideCard_NoImage(t *testing.T) {
	var payload CardPayload
	opts := Options{
		Overrides: Overrides{
			Card: func(p CardPayload) *Node {
				payload = p
				return &Node{Kind: KindView}
			},
		},
	}

	Render(&domain.PreviewData{Title: "x"}, opts)

	assert.False(t, payload.HasAspectRatio)
	assert.Zero(t, payload.AspectRatio)
}

func TestRender_OverrideCard_NotCalledWhenInvisible(t *testing.T) {
	called := false
	opts := Options{Overrides: Overrides{Card: func(CardPayload) *Node {
		called = true
		return &Node{Kind: KindView}
	}}}

	node := Render(&domain.PreviewData{Link: "https://x.example"}, opts)

	assert.True(t, node.IsEmpty())
	assert.False(t, called)
}

func TestRender_StyleOverlays(t *testing.T) {
	opts := Options{
		ContainerStyle:             Style{"background": "accent"},
		MetadataContainerStyle:     Style{"padding": "4"},
		MetadataTextContainerStyle: Style{"flex": "2", "gap": "1"},
	}

	node := Render(fullPreview(), opts)

	card := node.FindRegion(RegionCard)
	assert.Equal(t, "accent", card.Style.Get("background"))
	assert.Equal(t, "grey5", card.Style.Get("borderColor"))

	metadata := node.FindRegion(RegionMetadata)
	assert.Equal(t, "4", metadata.Style.Get("padding"))
	assert.Equal(t, "row", metadata.Style.Get("flexDirection"))

	column := node.FindRegion(RegionTextColumn)
	assert.Equal(t, "2", column.Style.Get("flex"))
	assert.Equal(t, "1", column.Style.Get("gap"))
}

func TestRender_Press_OpensLink(t *testing.T) {
	opener := &MockOpener{}

	node := Render(fullPreview(), Options{Opener: opener})
	node.OnPress()

	assert.Equal(t, []string{"https://example.com/post"}, opener.Opened)
}

func TestRender_Press_WithoutLinkDoesNothing(t *testing.T) {
	opener := &MockOpener{}

	node := Render(&domain.PreviewData{Title: "No link"}, Options{Opener: opener})
	require.NotNil(t, node.OnPress)
	node.OnPress()

	assert.Empty(t, opener.Opened)
}

func TestRender_Press_WithoutOpener(t *testing.T) {
	node := Render(fullPreview(), Options{})

	assert.NotPanics(t, node.OnPress)
}

func TestRender_PressableProps(t *testing.T) {
	t.Run("on press replaces built-in action", func(t *testing.T) {
		opener := &MockOpener{}
		pressed := 0
		node := Render(fullPreview(), Options{
			Opener:    opener,
			Pressable: PressableProps{OnPress: func() { pressed++ }},
		})

		node.OnPress()

		assert.Equal(t, 1, pressed)
		assert.Empty(t, opener.Opened)
	})

	t.Run("disabled removes action", func(t *testing.T) {
		node := Render(fullPreview(), Options{
			Opener:    &MockOpener{},
			Pressable: PressableProps{Disabled: true},
		})

		assert.Nil(t, node.OnPress)
		assert.Equal(t, "true", node.Attr("disabled"))
	})

	t.Run("attrs pass through", func(t *testing.T) {
		attrs := map[string]string{"testID": "card"}
		node := Render(fullPreview(), Options{Pressable: PressableProps{Attrs: attrs}})

		assert.Equal(t, "card", node.Attr("testID"))
		attrs["testID"] = "changed"
		assert.Equal(t, "card", node.Attr("testID"))
	})
}

func TestRender_LoosePolicy(t *testing.T) {
	data := &domain.PreviewData{Link: "https://example.com/x", Domain: "example.com"}

	strict := Render(data, Options{Policy: domain.PolicyStrict})
	loose := Render(data, Options{Policy: domain.PolicyLoose})

	assert.True(t, strict.IsEmpty())
	require.False(t, loose.IsEmpty())
	assert.Equal(t, "https://example.com/x", loose.FindRegion(RegionTitle).Text)
	assert.Equal(t, "example.com", loose.FindRegion(RegionDescription).Text)
}

func TestRender_InvalidPolicyFallsBackToStrict(t *testing.T) {
	data := &domain.PreviewData{Link: "https://example.com/x", Domain: "example.com"}

	node := Render(data, Options{Policy: domain.RenderPolicy("bogus")})

	assert.True(t, node.IsEmpty())
}
