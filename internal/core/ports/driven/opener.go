package driven

// URLOpener opens a URL with the host's default handler.
// It is fire-and-forget: no result is reported back.
type URLOpener interface {
	Open(url string)
}

// LayoutAnimator is triggered right before an accepted result changes what is
// shown. It is purely cosmetic and may do nothing.
type LayoutAnimator interface {
	Animate()
}
