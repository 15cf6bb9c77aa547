// Package domain holds the feed contracts
package domain

import (
	"context"
	"time"

	votes "juryduty/internal/services/api/votes/domain"
)

// Sort orders
const (
	SortNewest    = "newest"
	SortMostVotes = "most_votes"
)

// PageSize is the number of disputes per feed page
const PageSize = 10

// MaxPage bounds the page number so the offset stays small
const MaxPage = 10000

// Item is one completed dispute in the feed
type Item struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Topic       string       `json:"topic"`
	PersonAName string       `json:"person_a_name"`
	PersonBName *string      `json:"person_b_name"`
	TeaserA     string       `json:"person_a_teaser,omitempty"`
	TeaserB     string       `json:"person_b_teaser,omitempty"`
	CompletedAt time.Time    `json:"completed_at"`
	Votes       votes.Counts `json:"votes"`
}

// Page is one feed page
type Page struct {
	Disputes   []Item `json:"disputes"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Sort       string `json:"sort"`
}

// ServicePort is the feed surface
type ServicePort interface {
	Page(ctx context.Context, sort string, page int) (Page, error)
}
