package api

import (
	"github.com/sipzy/sipzy-backend/internal/services/beverages"
	"github.com/sipzy/sipzy-backend/internal/services/bookmarks"
	"github.com/sipzy/sipzy-backend/internal/services/experts"
	"github.com/sipzy/sipzy-backend/internal/services/social"
)

type API struct {
	Beverages *beverages.Service
	Experts   *experts.Service
	Social    *social.Service
	Bookmarks *bookmarks.Service
}

func NewAPI(
	beveragesSvc *beverages.Service,
	expertsSvc *experts.Service,
	socialSvc *social.Service,
	bookmarksSvc *bookmarks.Service,
) *API {
	return &API{
		Beverages: beveragesSvc,
		Experts:   expertsSvc,
		Social:    socialSvc,
		Bookmarks: bookmarksSvc,
	}
}
