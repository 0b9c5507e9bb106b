package jira

import (
	"encoding/json"
	"strconv"

	"go.trai.ch/depgraph/internal/core/domain"
)

// issueResponse is the REST representation of an issue.
type issueResponse struct {
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// searchResponse is one page of the enhanced JQL search.
type searchResponse struct {
	Issues        []issueResponse `json:"issues"`
	NextPageToken string          `json:"nextPageToken"`
	IsLast        bool            `json:"isLast"`
}

type namedValue struct {
	Name string `json:"name"`
}

type keyRef struct {
	Key string `json:"key"`
}

type issueLink struct {
	Type struct {
		Name    string `json:"name"`
		Inward  string `json:"inward"`
		Outward string `json:"outward"`
	} `json:"type"`
	InwardIssue  *keyRef `json:"inwardIssue"`
	OutwardIssue *keyRef `json:"outwardIssue"`
}

// fieldMap translates logical field names into tracker field ids.
type fieldMap map[string]string

func newFieldMap(cfg domain.JiraConfig) fieldMap {
	return fieldMap{
		domain.FieldSummary:     domain.FieldSummary,
		domain.FieldStatus:      domain.FieldStatus,
		domain.FieldIssueLinks:  domain.FieldIssueLinks,
		domain.FieldSubtasks:    domain.FieldSubtasks,
		domain.FieldStartDate:   orDefault(cfg.StartDateField, domain.DefaultStartDateField),
		domain.FieldEndDate:     orDefault(cfg.EndDateField, domain.DefaultEndDateField),
		domain.FieldStoryPoints: orDefault(cfg.StoryPointsField, domain.DefaultStoryPointsField),
	}
}

// ids returns the tracker ids of the requested fields.
func (m fieldMap) ids(fields domain.FieldSet) []string {
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		if id, ok := m[f]; ok {
			ids = append(ids, id)
		} else {
			ids = append(ids, f)
		}
	}
	return ids
}

// normalize turns a raw issue into a record. Custom fields are resolved here once.
func (m fieldMap) normalize(raw *issueResponse, fields domain.FieldSet) domain.IssueRecord {
	rec := domain.IssueRecord{
		Key:    raw.Key,
		Fields: fields,
	}

	decode := func(logical string, target any) bool {
		data, ok := raw.Fields[m[logical]]
		if !ok || len(data) == 0 || string(data) == "null" {
			return false
		}
		return json.Unmarshal(data, target) == nil
	}

	_ = decode(domain.FieldSummary, &rec.Summary)

	var status namedValue
	if decode(domain.FieldStatus, &status) && status.Name != "" {
		rec.Status = &status.Name
	}

	rec.StartDate = decodeText(raw.Fields[m[domain.FieldStartDate]])
	rec.EndDate = decodeText(raw.Fields[m[domain.FieldEndDate]])
	rec.StoryPoints = decodeNumber(raw.Fields[m[domain.FieldStoryPoints]])

	var links []issueLink
	if decode(domain.FieldIssueLinks, &links) {
		for _, l := range links {
			link := domain.IssueLink{Type: l.Type.Name, Outward: l.Type.Outward, Inward: l.Type.Inward}
			switch {
			case l.OutwardIssue != nil && l.OutwardIssue.Key != "":
				link.OtherKey = l.OutwardIssue.Key
				link.Direction = domain.LinkOutward
			case l.InwardIssue != nil && l.InwardIssue.Key != "":
				link.OtherKey = l.InwardIssue.Key
				link.Direction = domain.LinkInward
			}
			rec.Links = append(rec.Links, link)
		}
	}

	var subtasks []keyRef
	if decode(domain.FieldSubtasks, &subtasks) {
		for _, s := range subtasks {
			if s.Key != "" {
				rec.ChildKeys = append(rec.ChildKeys, s.Key)
			}
		}
	}

	return rec
}

// decodeText accepts strings and, for date pickers configured as numbers, numbers.
func decodeText(data json.RawMessage) *string {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return nil
		}
		return &s
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		s = strconv.FormatFloat(f, 'f', -1, 64)
		return &s
	}
	return nil
}

// decodeNumber accepts numbers and numeric strings.
func decodeNumber(data json.RawMessage) *float64 {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
