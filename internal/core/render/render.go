package render

import (
	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
)

// Default styles of the card regions.
var (
	defaultContainerStyle = Style{
		"background":        "grey6",
		"borderColor":       "grey5",
		"borderTopWidth":    "0.5",
		"borderBottomWidth": "0.5",
	}
	defaultMetadataStyle = Style{
		"flexDirection": "row",
		"padding":       "12",
	}
	defaultMetadataTextStyle = Style{
		"flex": "1",
	}
	defaultImageStyle = Style{
		"marginRight":  "8",
		"borderRadius": "2",
	}
	defaultTitleStyle = Style{
		"fontSize":   "13",
		"fontWeight": "bold",
		"color":      "grey1",
	}
	defaultDescriptionStyle = Style{
		"fontSize":  "12",
		"color":     "grey2",
		"marginTop": "4",
	}
)

// Line limits of the default text regions.
const (
	TitleMaxLines       = 2
	DescriptionMaxLines = 3
)

// CardPayload is what a whole-card override receives.
type CardPayload struct {
	// AspectRatio is the image's width/height. Only meaningful when
	// HasAspectRatio is true.
	AspectRatio    float64
	HasAspectRatio bool

	ContainerWidth float64

	PreviewData *domain.PreviewData
}

// Overrides replace the default renderer of a region. Nil fields keep the default.
type Overrides struct {
	Title       func(title string) *Node
	Description func(description string) *Node
	Image       func(image domain.PreviewImage) *Node
	Card        func(payload CardPayload) *Node
}

// PressableProps are passed through to the pressable root.
// A non-nil OnPress replaces the built-in action; Disabled removes it.
type PressableProps struct {
	OnPress  func()
	Disabled bool
	Attrs    map[string]string
}

// Options configure rendering.
type Options struct {
	Policy    domain.RenderPolicy
	Overrides Overrides

	ContainerStyle             Style
	MetadataContainerStyle     Style
	MetadataTextContainerStyle Style

	Pressable PressableProps

	// Opener handles taps on the card. Without one, taps do nothing.
	Opener driven.URLOpener
}

// Render builds the node tree for data.
// Invisible data yields the Empty node, which carries no press handler.
func Render(data *domain.PreviewData, opts Options) *Node {
	return build(data, opts, pressAction(data, opts.Opener))
}

// pressAction returns the built-in tap action for data: open its link, if any.
func pressAction(data *domain.PreviewData, opener driven.URLOpener) func() {
	link := ""
	if data != nil {
		link = data.Link
	}
	return openLink(link, opener)
}

func openLink(link string, opener driven.URLOpener) func() {
	return func() {
		if link == "" || opener == nil {
			return
		}
		opener.Open(link)
	}
}

func build(data *domain.PreviewData, opts Options, onPress func()) *Node {
	policy := opts.Policy
	if !policy.IsValid() {
		policy = domain.PolicyStrict
	}
	if !Visible(data, policy) {
		return Empty()
	}

	payload := CardPayload{
		ContainerWidth: ContainerWidth,
		PreviewData:    data,
	}
	if ratio, ok := data.AspectRatio(); ok {
		payload.AspectRatio = ratio
		payload.HasAspectRatio = true
	}

	card := Pick(opts.Overrides.Card, func(p CardPayload) *Node {
		return defaultCard(p, opts, policy)
	})(payload)

	root := &Node{
		Kind:     KindPressable,
		Role:     "button",
		OnPress:  onPress,
		Children: []*Node{card},
	}

	props := opts.Pressable
	if props.OnPress != nil {
		root.OnPress = props.OnPress
	}
	if props.Disabled {
		root.OnPress = nil
	}
	if len(props.Attrs) > 0 || props.Disabled {
		root.Attrs = make(map[string]string, len(props.Attrs)+1)
		for k, v := range props.Attrs {
			root.Attrs[k] = v
		}
		if props.Disabled {
			root.Attrs["disabled"] = "true"
		}
	}

	return root
}

func defaultCard(p CardPayload, opts Options, policy domain.RenderPolicy) *Node {
	data := p.PreviewData

	metadata := &Node{
		Kind:  KindView,
		Style: Flatten(defaultMetadataStyle, opts.MetadataContainerStyle),
		Attrs: map[string]string{AttrRegion: RegionMetadata},
	}

	if data.HasImage() {
		image := Pick(opts.Overrides.Image, func(img domain.PreviewImage) *Node {
			return defaultImage(img, AspectRatioOf(data))
		})(*data.Image)
		metadata.Children = append(metadata.Children, image)
	}

	textColumn := &Node{
		Kind:  KindView,
		Style: Flatten(defaultMetadataTextStyle, opts.MetadataTextContainerStyle),
		Attrs: map[string]string{AttrRegion: RegionTextColumn},
	}
	if title := TitleText(data, policy); title != "" {
		textColumn.Children = append(textColumn.Children, Pick(opts.Overrides.Title, defaultTitle)(title))
	}
	if description := DescriptionText(data, policy); description != "" {
		textColumn.Children = append(textColumn.Children, Pick(opts.Overrides.Description, defaultDescription)(description))
	}
	metadata.Children = append(metadata.Children, textColumn)

	return &Node{
		Kind:     KindView,
		Style:    Flatten(defaultContainerStyle, opts.ContainerStyle),
		Attrs:    map[string]string{AttrRegion: RegionCard},
		Children: []*Node{metadata},
	}
}

func defaultImage(img domain.PreviewImage, ratio float64) *Node {
	return &Node{
		Kind:   KindImage,
		Role:   "image",
		Style:  Flatten(defaultImageStyle),
		Source: img.URL,
		Box:    ImageBox(ratio),
		Attrs:  map[string]string{AttrRegion: RegionImage, "resizeMode": "contain"},
	}
}

func defaultTitle(title string) *Node {
	return &Node{
		Kind:     KindText,
		Style:    Flatten(defaultTitleStyle),
		Text:     title,
		MaxLines: TitleMaxLines,
		Attrs:    map[string]string{AttrRegion: RegionTitle},
	}
}

func defaultDescription(description string) *Node {
	return &Node{
		Kind:     KindText,
		Style:    Flatten(defaultDescriptionStyle),
		Text:     description,
		MaxLines: DescriptionMaxLines,
		Attrs:    map[string]string{AttrRegion: RegionDescription},
	}
}
