package social

import (
	"context"
	"sort"
)

// ReconcileReport summarizes one repair pass.
type ReconcileReport struct {
	EdgesScanned   int      `json:"edgesScanned"`
	EdgesRepaired  int      `json:"edgesRepaired"`
	UsersRecounted []string `json:"usersRecounted"`
}

// Reconcile repairs half-applied friendships: for every directed edge whose
// mirror is missing, the mirror is inserted. Repair favors the add — a lone
// edge usually means an addFriend half-succeeded, and re-adding is safe
// because a later removeFriend deletes both directions anyway. Every user
// touched by a repair gets their friendsCount badge recomputed.
func (s *Service) Reconcile(ctx context.Context) (ReconcileReport, error) {
	edges, err := s.store.ListFriendEdges(ctx)
	if err != nil {
		return ReconcileReport{}, err
	}

	present := make(map[[2]string]bool, len(edges))
	for _, edge := range edges {
		present[[2]string{edge.UserId, edge.FriendId}] = true
	}

	report := ReconcileReport{EdgesScanned: len(edges)}
	touched := make(map[string]bool)

	for _, edge := range edges {
		if present[[2]string{edge.FriendId, edge.UserId}] {
			continue
		}
		if err := s.store.UpsertFriendEdge(ctx, edge.FriendId, edge.UserId); err != nil {
			return report, err
		}
		report.EdgesRepaired++
		touched[edge.UserId] = true
		touched[edge.FriendId] = true
	}

	for userId := range touched {
		if err := s.recompute.RecomputeFriendsBadge(ctx, userId); err != nil {
			return report, err
		}
		report.UsersRecounted = append(report.UsersRecounted, userId)
	}
	sort.Strings(report.UsersRecounted)

	return report, nil
}
