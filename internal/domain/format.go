package domain

// ContentFormat enumerates the output formats a content kit can contain.
type ContentFormat string

const (
	FormatBlogPost         ContentFormat = "blog_post"
	FormatTweet            ContentFormat = "tweet"
	FormatLinkedInPost     ContentFormat = "linkedin_post"
	FormatInstagramCaption ContentFormat = "instagram_caption"
	FormatEmailNewsletter  ContentFormat = "email_newsletter"
	FormatVideoScript      ContentFormat = "video_script"
	FormatFacebookPost     ContentFormat = "facebook_post"
)

// AllFormats lists every supported format in display order.
func AllFormats() []ContentFormat {
	return []ContentFormat{
		FormatBlogPost,
		FormatTweet,
		FormatLinkedInPost,
		FormatInstagramCaption,
		FormatEmailNewsletter,
		FormatVideoScript,
		FormatFacebookPost,
	}
}

var backendContentTypes = map[ContentFormat]string{
	FormatBlogPost:         "blogPost",
	FormatTweet:            "tweets",
	FormatLinkedInPost:     "linkedinPost",
	FormatInstagramCaption: "instagramCaption",
	FormatEmailNewsletter:  "emailNewsletter",
	FormatVideoScript:      "videoScript",
	FormatFacebookPost:     "facebookPost",
}

// BackendContentType maps an internal format key to the identifier the
// generation backend expects. Unknown keys pass through unchanged so new
// formats can roll out without a lockstep deploy.
func BackendContentType(f ContentFormat) string {
	if v, ok := backendContentTypes[f]; ok {
		return v
	}
	return string(f)
}

var internalFormats = func() map[string]ContentFormat {
	m := make(map[string]ContentFormat, len(backendContentTypes))
	for f, backend := range backendContentTypes {
		m[backend] = f
	}
	return m
}()

// FormatFromBackendType inverts BackendContentType, with the same passthrough
// for unknown identifiers.
func FormatFromBackendType(s string) ContentFormat {
	if f, ok := internalFormats[s]; ok {
		return f
	}
	return ContentFormat(s)
}
