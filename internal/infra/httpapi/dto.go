package httpapi

import (
	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/usecase"
)

// eventRequest is the body of POST /v1/events. Exactly one of Text or Data
// is expected: Text for typed messages, Data for pressed buttons.
type eventRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
}

type buttonJSON struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
	Data  string `json:"data,omitempty"`
}

type chartJSON struct {
	Title       string `json:"title"`
	Format      string `json:"format"`
	Path        string `json:"path,omitempty"`
	Data        []byte `json:"data,omitempty"` // base64 in JSON
	Placeholder bool   `json:"placeholder,omitempty"`
}

type replyJSON struct {
	Chart        *chartJSON     `json:"chart,omitempty"`
	Text         string         `json:"text,omitempty"`
	Keyboard     string         `json:"keyboard,omitempty"`
	Buttons      [][]buttonJSON `json:"buttons,omitempty"`
	EditPrevious bool           `json:"edit_previous,omitempty"`
}

type eventResponse struct {
	State    string      `json:"state"`
	Record   *recordJSON `json:"record,omitempty"`
	SaveErr  string      `json:"save_error,omitempty"`
	Replies  []replyJSON `json:"replies"`
	Terminal string      `json:"terminal,omitempty"`
}

type recordJSON struct {
	ID      string  `json:"id"`
	At      string  `json:"date_time"`
	Project string  `json:"project"`
	Comment string  `json:"comment"`
	Hours   float64 `json:"hours"`
}

type shareJSON struct {
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
	Percent float64 `json:"percent"`
}

type statsResponse struct {
	Title     string      `json:"title"`
	Period    string      `json:"period"`
	Project   string      `json:"project,omitempty"`
	Shares    []shareJSON `json:"shares"`
	Total     float64     `json:"total"`
	Skipped   int         `json:"skipped"`
	NoRecords bool        `json:"no_records"`
}

type projectJSON struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toReplyJSON(r domain.Reply) replyJSON {
	out := replyJSON{
		Text:         r.Text,
		Keyboard:     string(r.Keyboard),
		EditPrevious: r.EditPrevious,
	}
	if r.Chart != nil {
		out.Chart = &chartJSON{
			Title:       r.Chart.Title,
			Format:      string(r.Chart.Format),
			Path:        r.Chart.Path,
			Data:        r.Chart.Data,
			Placeholder: r.Chart.Placeholder,
		}
	}
	for _, row := range r.Buttons {
		jr := make([]buttonJSON, 0, len(row))
		for _, b := range row {
			jb := buttonJSON{Label: b.Label, URL: b.URL}
			if b.URL == "" {
				jb.Data = b.Event.Data()
			}
			jr = append(jr, jb)
		}
		out.Buttons = append(out.Buttons, jr)
	}
	return out
}

func toEventResponse(out *usecase.DialogOutput, replies []domain.Reply) eventResponse {
	resp := eventResponse{
		State:    string(out.State),
		Terminal: string(out.Terminal),
		Replies:  make([]replyJSON, 0, len(replies)),
	}
	if out.Record != nil {
		resp.Record = &recordJSON{
			ID:      out.Record.ID,
			At:      out.Record.Timestamp.Format(domain.TimestampLayout),
			Project: out.Record.ProjectName,
			Comment: out.Record.Comment,
			Hours:   out.Record.Hours,
		}
	}
	if out.SaveErr != nil {
		resp.SaveErr = out.SaveErr.Error()
	}
	for _, r := range replies {
		resp.Replies = append(resp.Replies, toReplyJSON(r))
	}
	return resp
}

func toStatsResponse(out *usecase.ShowStatsOutput) statsResponse {
	resp := statsResponse{
		Title:     out.Title,
		Period:    string(out.Period),
		Project:   out.ProjectFilter,
		Shares:    make([]shareJSON, 0, len(out.Shares)),
		Total:     out.Stats.Total,
		Skipped:   len(out.Stats.Skipped),
		NoRecords: out.NoRecords,
	}
	for _, s := range out.Shares {
		resp.Shares = append(resp.Shares, shareJSON(s))
	}
	return resp
}
