package render

// Markdown renders content through a pooled glamour renderer
// configured by opts. The renderer returns to the pool when done so
// concurrent callers do not rebuild style sets.
func Markdown(content string, opts Options) (string, error) {
	r, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, r)

	return r.Render(content)
}

// MarkdownWithWidth renders with the default options wrapped to width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}
