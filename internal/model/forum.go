package model

import "time"

type ForumPost struct {
	ID         string        `json:"id"`
	AuthorID   string        `json:"authorId"`
	AuthorName string        `json:"authorName"`
	AuthorRole Role          `json:"authorRole"`
	Category   string        `json:"category"`
	Title      string        `json:"title"`
	Body       string        `json:"body"`
	Anonymous  bool          `json:"anonymous"`
	Replies    []*ForumReply `json:"replies"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type ForumReply struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	AuthorRole Role      `json:"authorRole"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ForumCategory struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	PostCount int    `json:"postCount"`
}
