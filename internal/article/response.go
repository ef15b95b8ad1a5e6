package article

import "github.com/tina-pina/the-scoop/internal/model"

// Response is the payload for a single article.
type Response struct {
	Article model.Article `json:"article"`
}

// ViewResponse carries an article with its comments resolved.
type ViewResponse struct {
	Article model.ArticleView `json:"article"`
}

type ListResponse struct {
	Articles []model.Article `json:"articles"`
}
