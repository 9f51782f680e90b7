// Package validate runs the read-only integrity check over the article
// store. It never mutates records; it is meant to run both before and
// after the repair passes so the operator can see the improvement.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jamsa/articlegen/internal/article"
	"github.com/jamsa/articlegen/internal/logger"
)

// A missing required field is a hard issue; the record cannot be rendered.
// Missing recommended fields and length problems are soft issues.
const requiredPrefix = "Missing required field: "

const (
	minContentLength = 500
	maxTitleLength   = 60
)

// Report lists the issues found on one record.
type Report struct {
	Index  int
	Title  string
	Issues []string
}

// Check validates every record and returns a report per record with at
// least one issue.
func Check(articles []article.Article) []Report {
	var reports []Report

	for i := range articles {
		a := &articles[i]
		var issues []string

		// Required fields, in a stable report order.
		required := []struct {
			name  string
			value string
		}{
			{"id", a.ID.String()},
			{"title", a.Title},
			{"slug", a.Slug},
			{"content", a.Content},
		}
		for _, f := range required {
			if f.value == "" {
				issues = append(issues, requiredPrefix+f.name)
			}
		}

		recommended := []struct {
			name  string
			value string
		}{
			{"excerpt", a.Excerpt},
			{"category", a.Category},
			{"datePublished", a.DatePublished},
			{"author", a.Author},
		}
		for _, f := range recommended {
			if f.value == "" {
				issues = append(issues, "Missing recommended field: "+f.name)
			}
		}

		if n := utf8.RuneCountInString(a.Content); n < minContentLength {
			issues = append(issues, fmt.Sprintf("Content too short (%d chars)", n))
		}
		if n := utf8.RuneCountInString(a.Title); n > maxTitleLength {
			issues = append(issues, fmt.Sprintf("Title too long for SEO (%d chars)", n))
		}

		if len(issues) > 0 {
			reports = append(reports, Report{Index: i, Title: a.Title, Issues: issues})
		}
	}

	return reports
}

// HasHardIssues reports whether any record is missing a required field.
func HasHardIssues(reports []Report) bool {
	for _, r := range reports {
		for _, issue := range r.Issues {
			if strings.HasPrefix(issue, requiredPrefix) {
				return true
			}
		}
	}
	return false
}

// Print logs the validation outcome, showing the first few problem records.
func Print(reports []Report, total int) {
	if len(reports) == 0 {
		logger.Info("all articles pass integrity check", "total", total)
		return
	}

	logger.Warn("articles with issues", "count", len(reports), "total", total)
	for i, r := range reports {
		if i >= 10 {
			logger.Warn("more articles with issues", "remaining", len(reports)-10)
			break
		}
		logger.Warn("article issues", "index", r.Index, "title", r.Title, "issues", strings.Join(r.Issues, "; "))
	}
}
