// Package store holds the application state and the closed set of
// transitions that change it.
//
// State values are never mutated in place. Reduce builds a new State for
// every successful transition and shares unchanged slices with the old one,
// so a State obtained from Snapshot stays valid after later dispatches.
// Callers must treat the slices in a State as read-only.
package store

import "skillswap/internal/domain"

type State struct {
	CurrentUser      *domain.User
	Users            []domain.User
	SwapRequests     []domain.SwapRequest
	Ratings          []domain.Rating
	SearchTerm       string
	SelectedCategory domain.Category
}

func (s State) userIndex(id string) int {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) requestIndex(id string) int {
	for i := range s.SwapRequests {
		if s.SwapRequests[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) ratingIndex(id string) int {
	for i := range s.Ratings {
		if s.Ratings[i].ID == id {
			return i
		}
	}
	return -1
}

func replaceAt[T any](items []T, i int, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = v
	return out
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func appendCopy[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}
