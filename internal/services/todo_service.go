package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/models"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrForbidden    = errors.New("you do not own this todo")
	ErrTitleMissing = errors.New("title is required")
)

type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

func (s *TodoService) Create(ownerID uuid.UUID, req *dto.CreateTodoRequest) (*models.Todo, error) {
	if req.Title == "" {
		return nil, ErrTitleMissing
	}

	todo := models.Todo{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.db.Create(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Get loads a single todo, enforcing that the caller owns it.
func (s *TodoService) Get(ownerID, todoID uuid.UUID) (*models.Todo, error) {
	return s.ownedTodo(ownerID, todoID)
}

func (s *TodoService) Update(ownerID, todoID uuid.UUID, req *dto.UpdateTodoRequest) (*models.Todo, error) {
	if req.Title == "" {
		return nil, ErrTitleMissing
	}

	todo, err := s.ownedTodo(ownerID, todoID)
	if err != nil {
		return nil, err
	}

	todo.Title = req.Title
	todo.Description = req.Description
	if err := s.db.Save(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ownerID, todoID uuid.UUID) error {
	todo, err := s.ownedTodo(ownerID, todoID)
	if err != nil {
		return err
	}
	return s.db.Delete(todo).Error
}

// List returns only the caller's todos; ownership is enforced in the query
// itself rather than by post-filtering the page.
func (s *TodoService) List(ownerID uuid.UUID, page, limit int) ([]models.Todo, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 12
	}
	if limit > 100 {
		limit = 100
	}

	var total int64
	if err := s.db.Model(&models.Todo{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []models.Todo
	err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&todos).Error

	return todos, total, err
}

// ownedTodo loads a todo and checks the owner against the caller. NotFound and
// Forbidden stay distinct internally; handlers map them to 404 and 403.
func (s *TodoService) ownedTodo(ownerID, todoID uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	if err := s.db.First(&todo, "id = ?", todoID).Error; err != nil {
		return nil, ErrTodoNotFound
	}
	if todo.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return &todo, nil
}
