package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/components/card"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/render"
)

var (
	previewTimeout  time.Duration
	previewPolicy   string
	previewJSON     bool
	previewOpen     bool
	previewPlain    bool
	previewTemplate string
	previewWidth    int
)

// defaultCardWidth is used when the output is not a terminal.
const defaultCardWidth = 72

var previewCmd = &cobra.Command{
	Use:   "preview [text...]",
	Short: "Preview the first link in text",
	Long: `Finds the first link in the given text, fetches its metadata and prints
a preview card.

Under the strict policy (default) a card is only shown when the page has a
title or a description. The loose policy also shows cards that only have a
link.

Output is a styled card on a terminal and plain text otherwise. Use --template
to render through a user-editable template (plain, markdown).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().DurationVarP(&previewTimeout, "timeout", "t", 0, "fetch timeout (default from settings)")
	previewCmd.Flags().StringVarP(&previewPolicy, "policy", "p", "", "render policy: strict or loose (default from settings)")
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "output the preview as JSON")
	previewCmd.Flags().BoolVarP(&previewOpen, "open", "o", false, "open the link after previewing")
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "print plain text even on a terminal")
	previewCmd.Flags().StringVar(&previewTemplate, "template", "", "render through a named template")
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 0, "card width in columns (default terminal width)")
	rootCmd.AddCommand(previewCmd)
}

// previewJSONOutput is the --json shape.
type previewJSONOutput struct {
	Visible bool                `json:"visible"`
	Policy  domain.RenderPolicy `json:"policy"`
	domain.PreviewData
}

// cardFields are what output templates receive.
type cardFields struct {
	Title       string
	Description string
	Link        string
	Domain      string
	Image       *domain.PreviewImage
}

func runPreview(cmd *cobra.Command, args []string) error {
	if previewService == nil {
		return errors.New("preview service not configured")
	}

	text := strings.Join(args, " ")
	policy, err := resolvePolicy(previewPolicy)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := previewService.Resolve(ctx, domain.PreviewRequest{
		Text:           text,
		RequestTimeout: previewTimeout,
	})
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	visible := render.Visible(data, policy)
	if err := writePreview(cmd, data, policy, visible); err != nil {
		return err
	}

	if previewOpen {
		if !visible {
			return errors.New("nothing to open")
		}
		node := render.Render(data, render.Options{Policy: policy, Opener: urlOpener})
		if node.OnPress != nil {
			node.OnPress()
		}
	}
	return nil
}

func writePreview(cmd *cobra.Command, data *domain.PreviewData, policy domain.RenderPolicy, visible bool) error {
	if previewJSON {
		out, err := json.MarshalIndent(previewJSONOutput{
			Visible:     visible,
			Policy:      policy,
			PreviewData: *data,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal preview: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}

	if !visible {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No preview available.")
		return err
	}

	if previewTemplate != "" {
		return executeTemplate(cmd.OutOrStdout(), previewTemplate, fieldsOf(data, policy))
	}

	out := cmd.OutOrStdout()
	width, tty := terminalWidth(out)
	if previewPlain || !tty {
		if templateStore != nil {
			return executeTemplate(out, "plain", fieldsOf(data, policy))
		}
		_, err := fmt.Fprintln(out, card.Plain(render.Render(data, render.Options{Policy: policy})))
		return err
	}

	if previewWidth > 0 {
		width = previewWidth
	}
	c := card.New(styles.DefaultStyles())
	c.SetWidth(width)
	_, err := fmt.Fprintln(out, c.View(render.Render(data, render.Options{Policy: policy})))
	return err
}

// resolvePolicy parses a --policy value, falling back to the service's policy.
func resolvePolicy(value string) (domain.RenderPolicy, error) {
	if value == "" {
		return previewService.Policy(), nil
	}
	policy := domain.RenderPolicy(strings.ToLower(value))
	if !policy.IsValid() {
		return "", fmt.Errorf("invalid policy %q (use strict or loose)", value)
	}
	return policy, nil
}

func fieldsOf(data *domain.PreviewData, policy domain.RenderPolicy) cardFields {
	return cardFields{
		Title:       render.TitleText(data, policy),
		Description: render.DescriptionText(data, policy),
		Link:        data.Link,
		Domain:      data.Domain,
		Image:       data.Image,
	}
}

func executeTemplate(w io.Writer, name string, fields cardFields) error {
	if templateStore == nil {
		return errors.New("template store not configured")
	}
	src, err := templateStore.Load(name)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	if err := tmpl.Execute(w, fields); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	return nil
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultCardWidth, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultCardWidth, true
	}
	return width, true
}
