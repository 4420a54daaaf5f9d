package api

import (
	"context"
	"encoding/json"

	"recmap/internal/mapper"
	"recmap/internal/model"
)

// RegisterBuiltins добавляет встроенные микросервисы.
func RegisterBuiltins(l *Launcher, e *mapper.Engine) error {
	if err := l.Register("repo_summary", RepoSummary(e)); err != nil {
		return err
	}
	return l.Register("issue_comparator", HandlerFunc(CompareIssues))
}

type repoSummary struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	Author     string   `json:"author"`
	Stars      int64    `json:"stars"`
	IssueCount int      `json:"issueCount"`
	Issues     []string `json:"issues"`
}

func errorJSON(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}

// RepoSummary: input — id репозитория, output — JSON-сводка или {"error": ...}.
func RepoSummary(e *mapper.Engine) Handler {
	return HandlerFunc(func(ctx context.Context, input string) string {
		if input == "" {
			return errorJSON("repo id is required")
		}
		r, ok, err := mapper.LoadAs(ctx, e, &model.Repo{ID: input})
		if err != nil {
			return errorJSON(err.Error())
		}
		if !ok {
			return errorJSON("repo not found")
		}
		out := repoSummary{
			ID:         r.ID,
			URL:        r.URL,
			Author:     r.AuthorName,
			Stars:      r.Stars,
			IssueCount: len(r.Issues),
			Issues:     make([]string, 0, len(r.Issues)),
		}
		for _, is := range r.Issues {
			out.Issues = append(out.Issues, is.Description)
		}
		b, err := json.Marshal(out)
		if err != nil {
			return errorJSON(err.Error())
		}
		return string(b)
	})
}

// Bug — найденная ошибка в том виде, в каком её отдают анализаторы.
type Bug struct {
	BugType     string `json:"bug_type"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Filename    string `json:"filename"`
}

type compareInput struct {
	List1 []Bug `json:"list1"`
	List2 []Bug `json:"list2"`
}

// CompareIssues возвращает ошибки list1, которые есть и в list2 (тип, файл, строка).
// Всегда отдаёт JSON-массив; битый вход даёт "[]".
func CompareIssues(_ context.Context, input string) string {
	var in compareInput
	if err := json.Unmarshal([]byte(input), &in); err != nil {
		return "[]"
	}
	type bugKey struct {
		kind, file string
		line       int
	}
	seen := make(map[bugKey]struct{}, len(in.List2))
	for _, b := range in.List2 {
		seen[bugKey{b.BugType, b.Filename, b.Line}] = struct{}{}
	}
	common := []Bug{}
	for _, b := range in.List1 {
		k := bugKey{b.BugType, b.Filename, b.Line}
		if _, ok := seen[k]; ok {
			common = append(common, b)
			delete(seen, k)
		}
	}
	out, err := json.Marshal(common)
	if err != nil {
		return "[]"
	}
	return string(out)
}
