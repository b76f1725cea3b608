package admin

import (
	"net/url"

	"github.com/yukikurage/kanban-board-api/internal/services"
)

type boardEditor struct{ a *Admin }

func (e boardEditor) load(id uint64) (*formPage, error) {
	board, err := e.a.svc.Boards.Get(id)
	if err != nil {
		return nil, err
	}

	columns := inline{Title: "Columns", Headers: []string{"Title", "Position", "Header color", "Cards"}}
	for _, col := range board.Columns {
		columns.Rows = append(columns.Rows, row{
			Link:  link("columns", col.ID),
			Cells: text(col.Title, itoa(col.Position), col.HeaderColor, itoa(len(col.Cards))),
		})
	}

	return &formPage{
		Title: "Board: " + board.Title,
		ID:    board.ID,
		Fields: []formField{
			{Name: "title", Label: "Title", Kind: kindText, Value: board.Title},
			{Name: "created_by", Label: "Created by", Kind: kindNumber, Value: itoa(board.CreatedByID), Help: "User ID"},
		},
		Inlines: []inline{columns},
	}, nil
}

func (e boardEditor) save(id uint64, form url.Values) error {
	errs := &services.ValidationError{}
	createdBy := formUint(errs, form, "created_by", true)
	if err := errs.OrNil(); err != nil {
		return err
	}

	board, err := e.a.svc.Boards.Find(id)
	if err != nil {
		return err
	}
	_, err = e.a.svc.Boards.Update(board, services.BoardInput{
		Title:     formText(form, "title"),
		CreatedBy: *createdBy,
	})
	return err
}

func (e boardEditor) remove(id uint64) error {
	return e.a.svc.Boards.Delete(id)
}

type columnEditor struct{ a *Admin }

func (e columnEditor) load(id uint64) (*formPage, error) {
	column, err := e.a.svc.Columns.GetByID(id)
	if err != nil {
		return nil, err
	}

	cards := inline{Title: "Cards", Headers: []string{"Title", "Description", "Labels"}}
	for _, card := range column.Cards {
		cards.Rows = append(cards.Rows, row{
			Link:  link("cards", card.ID),
			Cells: text(card.Title, card.ShortDescription(), card.LabelTitles()),
		})
	}

	return &formPage{
		Title: "Column: " + column.String(),
		ID:    column.ID,
		Fields: []formField{
			{Name: "title", Label: "Title", Kind: kindText, Value: column.Title},
			{Name: "position", Label: "Position", Kind: kindNumber, Value: itoa(column.Position)},
			{Name: "header_color", Label: "Header color", Kind: kindText, Value: column.HeaderColor},
		},
		Inlines: []inline{cards},
	}, nil
}

func (e columnEditor) save(id uint64, form url.Values) error {
	errs := &services.ValidationError{}
	position := formInt(errs, form, "position")
	if err := errs.OrNil(); err != nil {
		return err
	}

	column, err := e.a.svc.Columns.GetByID(id)
	if err != nil {
		return err
	}
	headerColor := formText(form, "header_color")
	_, err = e.a.svc.Columns.Update(column, services.ColumnInput{
		Title:       formText(form, "title"),
		Position:    position,
		HeaderColor: &headerColor,
	})
	return err
}

func (e columnEditor) remove(id uint64) error {
	column, err := e.a.svc.Columns.GetByID(id)
	if err != nil {
		return err
	}
	return e.a.svc.Columns.Remove(column)
}

type labelEditor struct{ a *Admin }

func (e labelEditor) load(id uint64) (*formPage, error) {
	label, err := e.a.svc.Labels.GetByID(id)
	if err != nil {
		return nil, err
	}

	return &formPage{
		Title: "Label: " + label.String(),
		ID:    label.ID,
		Fields: []formField{
			{Name: "title", Label: "Title", Kind: kindText, Value: label.Title},
			{Name: "color", Label: "Color", Kind: kindText, Value: label.Color},
		},
	}, nil
}

func (e labelEditor) save(id uint64, form url.Values) error {
	label, err := e.a.svc.Labels.GetByID(id)
	if err != nil {
		return err
	}
	color := formText(form, "color")
	_, err = e.a.svc.Labels.Update(label, services.LabelInput{
		Title: formText(form, "title"),
		Color: &color,
	})
	return err
}

func (e labelEditor) remove(id uint64) error {
	label, err := e.a.svc.Labels.GetByID(id)
	if err != nil {
		return err
	}
	return e.a.svc.Labels.Remove(label)
}

type cardEditor struct{ a *Admin }

func (e cardEditor) load(id uint64) (*formPage, error) {
	card, err := e.a.svc.Cards.GetByID(id)
	if err != nil {
		return nil, err
	}
	columns, err := e.a.svc.Columns.List(card.BoardID)
	if err != nil {
		return nil, err
	}
	labels, err := e.a.svc.Labels.List(card.BoardID)
	if err != nil {
		return nil, err
	}

	columnOptions := []option{{Value: "", Label: "---------", Selected: card.ColumnID == nil}}
	for _, col := range columns {
		columnOptions = append(columnOptions, option{
			Value:    itoa(col.ID),
			Label:    col.Title,
			Selected: card.ColumnID != nil && *card.ColumnID == col.ID,
		})
	}

	attached := map[uint64]bool{}
	for _, l := range card.Labels {
		attached[l.ID] = true
	}
	labelOptions := make([]option, len(labels))
	for i, l := range labels {
		labelOptions[i] = option{Value: itoa(l.ID), Label: l.Title, Selected: attached[l.ID]}
	}

	assignees := make([]uint64, len(card.Assignees))
	for i, u := range card.Assignees {
		assignees[i] = u.ID
	}

	comments := inline{Title: "Comments", Headers: []string{"Comment", "Message"}}
	for _, cm := range card.Comments {
		comments.Rows = append(comments.Rows, row{
			Link:  link("comments", cm.ID),
			Cells: []cell{{Text: cm.Summary()}, {HTML: e.a.markdown.Render(cm.Message)}},
		})
	}

	return &formPage{
		Title: "Card: " + card.String(),
		ID:    card.ID,
		Fields: []formField{
			{Name: "title", Label: "Title", Kind: kindText, Value: card.Title},
			{Name: "description", Label: "Description", Kind: kindTextarea, Value: card.Description},
			{Name: "column", Label: "Column", Kind: kindSelect, Options: columnOptions},
			{Name: "created_by", Label: "Created by", Kind: kindNumber, Value: itoa(card.CreatedByID), Help: "User ID"},
			{Name: "labels", Label: "Labels", Kind: kindChecks, Options: labelOptions},
			{Name: "assignees", Label: "Assignees", Kind: kindText, Value: joinIDs(assignees), Help: "Comma separated user IDs"},
		},
		Inlines: []inline{comments},
	}, nil
}

func (e cardEditor) save(id uint64, form url.Values) error {
	errs := &services.ValidationError{}
	createdBy := formUint(errs, form, "created_by", true)
	columnID := formUint(errs, form, "column", false)
	labels := formIDs(errs, form, "labels")
	assignees := formIDs(errs, form, "assignees")
	if err := errs.OrNil(); err != nil {
		return err
	}

	card, err := e.a.svc.Cards.GetByID(id)
	if err != nil {
		return err
	}
	_, err = e.a.svc.Cards.Update(card, services.CardInput{
		Title:       formText(form, "title"),
		Description: form.Get("description"),
		CreatedBy:   *createdBy,
		ColumnSet:   true,
		ColumnID:    columnID,
		Labels:      labels,
		Assignees:   assignees,
	})
	return err
}

func (e cardEditor) remove(id uint64) error {
	card, err := e.a.svc.Cards.GetByID(id)
	if err != nil {
		return err
	}
	return e.a.svc.Cards.Remove(card)
}

type commentEditor struct{ a *Admin }

func (e commentEditor) load(id uint64) (*formPage, error) {
	comment, err := e.a.svc.Comments.GetByID(id)
	if err != nil {
		return nil, err
	}

	updatedAt := ""
	if comment.UpdatedAt != nil {
		updatedAt = comment.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
	}
	title := "Comment: " + comment.Summary()
	if comment.Card != nil {
		title += " (" + comment.Card.Title + ")"
	}

	return &formPage{
		Title: title,
		ID:    comment.ID,
		Fields: []formField{
			{Name: "message", Label: "Message", Kind: kindTextarea, Value: comment.Message, Help: "Markdown"},
			{Name: "created_by", Label: "Created by", Kind: kindNumber, Value: itoa(comment.CreatedByID), Help: "User ID"},
			{Name: "updated_by", Label: "Updated by", Kind: kindNumber, Value: uintValue(comment.UpdatedByID), Help: "User ID"},
			{Name: "updated_at", Label: "Updated at", Kind: kindText, Value: updatedAt, Help: "YYYY-MM-DD hh:mm:ss, UTC"},
		},
		Preview: e.a.markdown.Render(comment.Message),
	}, nil
}

func (e commentEditor) save(id uint64, form url.Values) error {
	errs := &services.ValidationError{}
	createdBy := formUint(errs, form, "created_by", true)
	updatedBy := formUint(errs, form, "updated_by", false)
	if err := errs.OrNil(); err != nil {
		return err
	}

	var updatedAt *string
	if raw := formText(form, "updated_at"); raw != "" {
		updatedAt = &raw
	}

	comment, err := e.a.svc.Comments.GetByID(id)
	if err != nil {
		return err
	}
	_, err = e.a.svc.Comments.Update(comment, services.CommentInput{
		Message:      form.Get("message"),
		CreatedBy:    *createdBy,
		UpdatedAtSet: true,
		UpdatedAt:    updatedAt,
		UpdatedBySet: true,
		UpdatedBy:    updatedBy,
	})
	return err
}

func (e commentEditor) remove(id uint64) error {
	comment, err := e.a.svc.Comments.GetByID(id)
	if err != nil {
		return err
	}
	return e.a.svc.Comments.Remove(comment)
}
