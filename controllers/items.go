// File: /controllers/items.go
package controllers

import (
	"loopline-api/apperr"
	"loopline-api/repositories"
)

// Item kinds, named after the collection that owns the id.
const (
	ItemKindPost    = "post"
	ItemKindComment = "comment"
)

type itemProbe struct {
	kind   string
	exists func(id string) (bool, error)
	author func(id string) (string, error)
}

// ItemResolver decides what an untyped item reference points at. Comments
// and reactions attach to "items"; only the resolver knows which
// collections an item can live in, the collections themselves stay unaware
// of each other.
//
// Probe order is fixed: posts first, then comments. Ids come from a single
// allocator, so at most one collection can answer; the order just decides
// who gets asked first.
type ItemResolver struct {
	probes []itemProbe
}

func NewItemResolver(posts *repositories.PostRepository, comments *repositories.CommentRepository) *ItemResolver {
	return &ItemResolver{
		probes: []itemProbe{
			{kind: ItemKindPost, exists: posts.Exists, author: posts.GetAuthorID},
			{kind: ItemKindComment, exists: comments.Exists, author: comments.GetAuthorID},
		},
	}
}

// Resolve probes the collections in order and returns the kind that owns
// the id. A probe miss just moves on to the next candidate; a miss
// everywhere is apperr.ParentNotFound. Storage failures surface immediately.
func (ir *ItemResolver) Resolve(id string) (string, error) {
	for _, probe := range ir.probes {
		found, err := probe.exists(id)
		if err != nil {
			return "", err
		}
		if found {
			return probe.kind, nil
		}
	}
	return "", apperr.ParentNotFound(id)
}

// AuthorOf returns the author of an already-resolved item.
func (ir *ItemResolver) AuthorOf(kind, id string) (string, error) {
	for _, probe := range ir.probes {
		if probe.kind == kind {
			return probe.author(id)
		}
	}
	return "", apperr.ParentNotFound(id)
}
