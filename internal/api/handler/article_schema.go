package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createArticleResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// Article create/update requests arrive as multipart forms with `title` and
// `content` fields plus an optional `featured_image` file, so there is no
// JSON request schema to bind here.
