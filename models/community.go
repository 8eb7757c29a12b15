package models

import (
	"strings"
	"time"
)

// Education post formats.
const (
	PostArticle        = "Article"
	PostVideo          = "Video"
	PostMarketAnalysis = "Market Analysis"
	PostRiskGuide      = "Risk Guide"
)

// PostTypes lists the post formats in display order.
var PostTypes = []string{PostArticle, PostVideo, PostMarketAnalysis, PostRiskGuide}

// Post is an education hub entry published by an advisor. Posts are shared
// by every session.
type Post struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Type      string    `json:"type" yaml:"type"`
	Summary   string    `json:"summary" yaml:"summary"`
	Likes     int       `json:"likes" yaml:"likes"`
	Comments  []string  `gorm:"serializer:json" json:"comments" yaml:"comments"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

// Normalize trims the free text fields and fills in the default format.
func (p *Post) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Summary = strings.TrimSpace(p.Summary)
	if p.Type == "" {
		p.Type = PostArticle
	}
	if p.Comments == nil {
		p.Comments = []string{}
	}
}

// Moderation states.
const (
	AdvisorPending  = "Pending"
	AdvisorApproved = "Approved"
	ComplaintOpen   = "Open"
	ComplaintClosed = "Closed"
)

// AdvisorApplication is an advisor waiting for, or holding, admin approval.
type AdvisorApplication struct {
	ID     int    `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
}

// Complaint is a user report handled by an admin.
type Complaint struct {
	ID     int    `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Issue  string `json:"issue" yaml:"issue"`
	Status string `json:"status" yaml:"status"`
}

// FlaggedUser is an account suspected of fraud. Removal is a flag, the
// record stays for audit.
type FlaggedUser struct {
	ID      int    `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Removed bool   `json:"removed" yaml:"removed"`
}

// ModerationQueue is everything on the admin moderation desk.
type ModerationQueue struct {
	Advisors     []AdvisorApplication `json:"advisors" yaml:"advisors"`
	Complaints   []Complaint          `json:"complaints" yaml:"complaints"`
	FlaggedUsers []FlaggedUser        `json:"flagged_users" yaml:"flagged_users"`
}
