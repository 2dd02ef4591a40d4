package server

import (
	"net/http"
	"time"

	"github.com/sipzy/sipzy-backend/internal/api"
)

// NewServer wires the HTTP surface the gateway routes to. Authentication
// lives upstream; the identity middleware only extracts the forwarded caller
// id.
func NewServer(a *api.API) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler)

	mux.HandleFunc("GET /beverages/{beverageId}", a.GetBeverage)
	mux.HandleFunc("GET /beverages/{beverageId}/ratings", a.GetBeverageRatings)
	mux.HandleFunc("POST /beverages/{beverageId}/ratings", a.SubmitRating)

	mux.HandleFunc("POST /experts/ratings/{beverageId}", a.SubmitExpertRating)
	mux.HandleFunc("GET /experts/{expertId}/average", a.GetExpertAverage)

	mux.HandleFunc("POST /friends/{friendId}", a.AddFriend)
	mux.HandleFunc("DELETE /friends/{friendId}", a.RemoveFriend)
	mux.HandleFunc("GET /friends", a.GetMyFriends)

	mux.HandleFunc("POST /bookmarks/{restaurantId}", a.AddBookmark)
	mux.HandleFunc("DELETE /bookmarks/{restaurantId}", a.RemoveBookmark)
	mux.HandleFunc("GET /bookmarks", a.GetMyBookmarks)

	return RequestIdMiddleware(IdentityMiddleware(mux))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"SipZy backend running","timestamp":"` +
		time.Now().UTC().Format(time.RFC3339) + `"}`))
}
