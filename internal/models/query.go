package models

import "strings"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageRequest is a normalized 1-based page number plus page size.
type PageRequest struct {
	Page  int
	Limit int
}

func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

// PageInfo is the pagination block of a list response.
type PageInfo struct {
	Count       int   `json:"count"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func NewPageInfo(count int, total int64, p PageRequest) PageInfo {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PageInfo{
		Count:       count,
		Total:       total,
		TotalPages:  pages,
		CurrentPage: p.Page,
	}
}

// SortOrder is a field name plus direction, parsed from "field" / "-field".
type SortOrder struct {
	Field string
	Desc  bool
}

func ParseSort(s string) SortOrder {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortOrder{Field: "createdAt", Desc: true}
	}
	if strings.HasPrefix(s, "-") {
		return SortOrder{Field: s[1:], Desc: true}
	}
	return SortOrder{Field: s}
}

// JobFilter collects the optional public-listing predicates. Zero values mean
// "not filtered". Search and Location narrow independently (each is an OR over
// its own columns, the groups are ANDed together).
type JobFilter struct {
	Search          string
	Location        string
	JobType         string
	ExperienceLevel string
	Category        string
	MinSalary       *int
	MaxSalary       *int
	Remote          bool
	Sort            SortOrder
}

type CompanyFilter struct {
	Search      string
	Industry    string
	CompanySize string
}
