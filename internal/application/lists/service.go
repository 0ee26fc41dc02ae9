package lists

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rezkam/listly/internal/domain"
)

// Service provides business logic for shopping list management.
// It is the only place where normalization, defaulting and update-merge
// rules live; the Repository is a pure data-access boundary.
//
// Mutations are a read-modify-write of the whole list document with no
// conflict detection: concurrent writers to the same list race and the last
// Save wins.
type Service struct {
	repo  Repository
	newID func() (string, error)
}

// NewService creates a new list service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: newItemID,
	}
}

func newItemID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ListLists returns list summaries.
// A non-blank query selects lists whose title contains it (case-insensitive);
// otherwise a non-blank category selects lists in that category
// (case-insensitive exact match); otherwise every list is returned.
// The query takes precedence when both are given.
func (s *Service) ListLists(ctx context.Context, category, query string) ([]domain.ListSummary, error) {
	var (
		lists []*domain.List
		err   error
	)

	switch q, c := strings.TrimSpace(query), strings.TrimSpace(category); {
	case q != "":
		lists, err = s.repo.FindByTitleContaining(ctx, q)
	case c != "":
		lists, err = s.repo.FindByCategory(ctx, c)
	default:
		lists, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}

	summaries := make([]domain.ListSummary, len(lists))
	for i, l := range lists {
		summaries[i] = l.Summary()
	}
	return summaries, nil
}

// CreateList creates a new list with no items.
func (s *Service) CreateList(ctx context.Context, params domain.ListParams) (*domain.List, error) {
	list := &domain.List{Items: []domain.Item{}}
	if err := applyListParams(list, params); err != nil {
		return nil, err
	}

	created, err := s.repo.Save(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return created, nil
}

// GetList retrieves a list with its items.
func (s *Service) GetList(ctx context.Context, id string) (*domain.List, error) {
	return s.findList(ctx, id)
}

// UpdateList replaces title, category, target date and description.
// Items and ID are left untouched.
func (s *Service) UpdateList(ctx context.Context, id string, params domain.ListParams) (*domain.List, error) {
	// Reject invalid input before reading the list.
	var probe domain.List
	if err := applyListParams(&probe, params); err != nil {
		return nil, err
	}

	list, err := s.findList(ctx, id)
	if err != nil {
		return nil, err
	}

	list.Title = probe.Title
	list.Category = probe.Category
	list.TargetDate = probe.TargetDate
	list.Description = probe.Description

	updated, err := s.repo.Save(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}

	return updated, nil
}

// DeleteList deletes a list and all of its items.
func (s *Service) DeleteList(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrListNotFound
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check list: %w", err)
	}
	if !exists {
		return domain.ErrListNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	return nil
}

// ListItems returns the items of a list in stored order.
func (s *Service) ListItems(ctx context.Context, listID string) ([]domain.Item, error) {
	list, err := s.findList(ctx, listID)
	if err != nil {
		return nil, err
	}

	if list.Items == nil {
		return []domain.Item{}, nil
	}
	return list.Items, nil
}

// AddItem appends a new item to a list.
// The item starts uncompleted; status and priority take their defaults when absent.
func (s *Service) AddItem(ctx context.Context, listID string, params domain.CreateItemParams) (*domain.Item, error) {
	item, err := newItem(params)
	if err != nil {
		return nil, err
	}

	list, err := s.findList(ctx, listID)
	if err != nil {
		return nil, err
	}

	item.ID, err = s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	list.AppendItem(item)
	if _, err := s.repo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return &item, nil
}

// UpdateItemCompletion sets the completed flag; no other field changes.
func (s *Service) UpdateItemCompletion(ctx context.Context, listID, itemID string, completed bool) (*domain.Item, error) {
	list, item, err := s.findItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	item.Completed = completed
	updated := *item

	if _, err := s.repo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &updated, nil
}

// UpdateItem applies a partial update.
// Each field is applied only when present; text is additionally skipped when
// blank after trimming. Status and priority are normalized as on creation.
func (s *Service) UpdateItem(ctx context.Context, listID, itemID string, params domain.UpdateItemParams) (*domain.Item, error) {
	patch, err := newItemPatch(params)
	if err != nil {
		return nil, err
	}

	list, item, err := s.findItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	patch.applyTo(item)
	updated := *item

	if _, err := s.repo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &updated, nil
}

// DeleteItem removes an item from its list.
func (s *Service) DeleteItem(ctx context.Context, listID, itemID string) error {
	list, err := s.findList(ctx, listID)
	if err != nil {
		return err
	}

	if itemID == "" || !list.RemoveItem(itemID) {
		return domain.ErrItemNotFound
	}

	if _, err := s.repo.Save(ctx, list); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

func (s *Service) findList(ctx context.Context, id string) (*domain.List, error) {
	if id == "" {
		return nil, domain.ErrListNotFound
	}

	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	return list, nil
}

func (s *Service) findItem(ctx context.Context, listID, itemID string) (*domain.List, *domain.Item, error) {
	list, err := s.findList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}

	item, ok := list.FindItem(itemID)
	if !ok {
		return nil, nil, domain.ErrItemNotFound
	}

	return list, item, nil
}

// applyListParams normalizes params onto list. list is untouched on error.
func applyListParams(list *domain.List, params domain.ListParams) error {
	title, err := domain.NewTitle(params.Title)
	if err != nil {
		return err
	}
	category, err := domain.NewCategory(params.Category)
	if err != nil {
		return err
	}
	description, err := domain.NewDescription(params.Description)
	if err != nil {
		return err
	}

	list.Title = title.String()
	list.Category = category
	list.TargetDate = params.TargetDate
	list.Description = description
	return nil
}

func newItem(params domain.CreateItemParams) (domain.Item, error) {
	text, err := domain.NewItemText(params.Text)
	if err != nil {
		return domain.Item{}, err
	}
	assignee, err := domain.NewAssignee(params.Assignee)
	if err != nil {
		return domain.Item{}, err
	}
	status, err := domain.NewItemStatus(params.Status)
	if err != nil {
		return domain.Item{}, err
	}

	return domain.Item{
		Text:      text,
		Completed: false,
		Assignee:  assignee,
		Status:    status,
		Priority:  domain.NormalizePriority(params.Priority),
	}, nil
}

// itemPatch is a validated, normalized UpdateItemParams.
type itemPatch struct {
	text      *string
	setAssign bool
	assignee  *string
	status    *domain.ItemStatus
	priority  *int
	completed *bool
}

func newItemPatch(params domain.UpdateItemParams) (itemPatch, error) {
	var p itemPatch

	if params.Text != nil {
		text, err := domain.NewItemText(*params.Text)
		switch {
		case errors.Is(err, domain.ErrTextRequired):
			// Blank text in an update keeps the stored text.
		case err != nil:
			return itemPatch{}, err
		default:
			p.text = &text
		}
	}

	if params.Assignee != nil {
		assignee, err := domain.NewAssignee(params.Assignee)
		if err != nil {
			return itemPatch{}, err
		}
		p.setAssign = true
		p.assignee = assignee
	}

	if params.Status != nil {
		status, err := domain.NewItemStatus(params.Status)
		if err != nil {
			return itemPatch{}, err
		}
		p.status = &status
	}

	if params.Priority != nil {
		priority := domain.NormalizePriority(params.Priority)
		p.priority = &priority
	}

	p.completed = params.Completed
	return p, nil
}

func (p itemPatch) applyTo(item *domain.Item) {
	if p.text != nil {
		item.Text = *p.text
	}
	if p.setAssign {
		item.Assignee = p.assignee
	}
	if p.status != nil {
		item.Status = *p.status
	}
	if p.priority != nil {
		item.Priority = *p.priority
	}
	if p.completed != nil {
		item.Completed = *p.completed
	}
}
