package admin

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
)

// modelAdmin describes one model's list page. Models without an editor are
// read-only.
type modelAdmin struct {
	name    string
	title   string
	headers []string
	count   func() (int64, error)
	search  func(filter repository.ListFilter) ([]row, int64, error)
	editor  editor
}

type cell struct {
	Text string
	HTML template.HTML
}

type row struct {
	Link  string
	Cells []cell
}

func text(values ...string) []cell {
	cells := make([]cell, len(values))
	for i, v := range values {
		cells[i] = cell{Text: v}
	}
	return cells
}

func itoa[T ~int | ~int64 | ~uint64](n T) string {
	return strconv.FormatInt(int64(n), 10)
}

func link(model string, id uint64) string {
	return fmt.Sprintf("/admin/%s/%d/", model, id)
}

func (a *Admin) registry() []*modelAdmin {
	return []*modelAdmin{
		{
			name:    "boards",
			title:   "Boards",
			headers: []string{"Title", "Created by", "Columns", "Cards", "Comments"},
			count:   a.repos.Boards.Count,
			search: func(filter repository.ListFilter) ([]row, int64, error) {
				boards, total, err := a.repos.Boards.Search(filter)
				rows := make([]row, len(boards))
				for i, b := range boards {
					// Only cards placed in one of the board's columns count
					cards, comments := 0, 0
					for _, col := range b.Columns {
						cards += len(col.Cards)
						for _, card := range col.Cards {
							comments += len(card.Comments)
						}
					}
					rows[i] = row{
						Link:  link("boards", b.ID),
						Cells: text(b.Title, b.CreatedBy.Username, itoa(len(b.Columns)), itoa(cards), itoa(comments)),
					}
				}
				return rows, total, err
			},
			editor: boardEditor{a},
		},
		{
			name:    "columns",
			title:   "Columns",
			headers: []string{"Title", "Board", "Position", "Cards", "Comments"},
			count:   a.repos.Columns.Count,
			search: func(filter repository.ListFilter) ([]row, int64, error) {
				columns, total, err := a.repos.Columns.Search(filter)
				rows := make([]row, len(columns))
				for i, col := range columns {
					comments := 0
					for _, card := range col.Cards {
						comments += len(card.Comments)
					}
					board := ""
					if col.Board != nil {
						board = col.Board.Title
					}
					rows[i] = row{
						Link:  link("columns", col.ID),
						Cells: text(col.Title, board, itoa(col.Position), itoa(len(col.Cards)), itoa(comments)),
					}
				}
				return rows, total, err
			},
			editor: columnEditor{a},
		},
		{
			name:    "labels",
			title:   "Labels",
			headers: []string{"Board", "Title", "Color"},
			count:   a.repos.Labels.Count,
			search: func(filter repository.ListFilter) ([]row, int64, error) {
				labels, total, err := a.repos.Labels.Search(filter)
				rows := make([]row, len(labels))
				for i, l := range labels {
					board := ""
					if l.Board != nil {
						board = l.Board.Title
					}
					rows[i] = row{Link: link("labels", l.ID), Cells: text(board, l.Title, l.Color)}
				}
				return rows, total, err
			},
			editor: labelEditor{a},
		},
		{
			name:    "cards",
			title:   "Cards",
			headers: []string{"Title", "Column", "Description", "Assignees", "Labels", "Comments"},
			count:   a.repos.Cards.Count,
			search: func(filter repository.ListFilter) ([]row, int64, error) {
				cards, total, err := a.repos.Cards.Search(filter)
				rows := make([]row, len(cards))
				for i, card := range cards {
					column := "-"
					if card.Column != nil {
						column = card.Column.Title
					}
					rows[i] = row{
						Link: link("cards", card.ID),
						Cells: text(card.Title, column, card.ShortDescription(), card.AssigneeNames(),
							card.LabelTitles(), itoa(len(card.Comments))),
					}
				}
				return rows, total, err
			},
			editor: cardEditor{a},
		},
		{
			name:    "comments",
			title:   "Comments",
			headers: []string{"Comment", "Card"},
			count:   a.repos.Comments.Count,
			search: func(filter repository.ListFilter) ([]row, int64, error) {
				comments, total, err := a.repos.Comments.Search(filter)
				rows := make([]row, len(comments))
				for i, cm := range comments {
					card := ""
					if cm.Card != nil {
						card = cm.Card.Title
					}
					rows[i] = row{Link: link("comments", cm.ID), Cells: text(cm.Summary(), card)}
				}
				return rows, total, err
			},
			editor: commentEditor{a},
		},
		{
			name:    "projects",
			title:   "Projects",
			headers: []string{"Title"},
			count:   a.repos.Teams.CountProjects,
			search: func(filter repository.ListFilter) ([]row, int64, error) {
				projects, total, err := a.repos.Teams.SearchProjects(filter)
				rows := make([]row, len(projects))
				for i, p := range projects {
					rows[i] = row{Cells: text(p.Title)}
				}
				return rows, total, err
			},
		},
		{
			name:    "teams",
			title:   "Teams",
			headers: []string{"Name", "Members", "Projects"},
			count:   a.repos.Teams.CountTeams,
			search: func(filter repository.ListFilter) ([]row, int64, error) {
				teams, total, err := a.repos.Teams.SearchTeams(filter)
				rows := make([]row, len(teams))
				for i, t := range teams {
					rows[i] = row{Cells: text(t.Name, memberList(t), itoa(len(t.Projects)))}
				}
				return rows, total, err
			},
		},
	}
}

func memberList(t models.Team) string {
	out := ""
	for i, m := range t.Memberships {
		if i > 0 {
			out += ", "
		}
		out += m.User.Username
		if m.Role != nil {
			out += " (" + m.Role.Title + ")"
		}
	}
	return out
}

type indexEntry struct {
	Name  string
	Title string
	Count int64
}

type indexPage struct {
	Title  string
	User   *models.User
	Users  int64
	Models []indexEntry
}

func (a *Admin) index(c *gin.Context) {
	users, err := a.repos.Users.Count()
	if err != nil {
		a.fail(c, err)
		return
	}

	entries := make([]indexEntry, 0, len(a.models))
	for _, m := range a.models {
		count, err := m.count()
		if err != nil {
			a.fail(c, err)
			return
		}
		entries = append(entries, indexEntry{Name: m.name, Title: m.title, Count: count})
	}

	a.render(c, http.StatusOK, "index.html", indexPage{
		Title:  "Site administration",
		User:   currentUser(c),
		Users:  users,
		Models: entries,
	})
}

type listPage struct {
	Title      string
	User       *models.User
	Model      string
	Query      string
	Headers    []string
	Rows       []row
	Pagination utils.PaginationResponse
}

func (a *Admin) list(c *gin.Context) {
	m, ok := a.byName[c.Param("model")]
	if !ok {
		a.render(c, http.StatusNotFound, "error.html", errorPage{Title: "Not found", User: currentUser(c), Message: "Not found."})
		return
	}

	params := utils.GetPaginationParams(c)
	query := c.Query("q")
	rows, total, err := m.search(repository.ListFilter{Query: query, Pagination: params})
	if err != nil {
		a.fail(c, err)
		return
	}

	a.render(c, http.StatusOK, "list.html", listPage{
		Title:      m.title,
		User:       currentUser(c),
		Model:      m.name,
		Query:      query,
		Headers:    m.headers,
		Rows:       rows,
		Pagination: utils.NewPaginationResponse(params, total),
	})
}
