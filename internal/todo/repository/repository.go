package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/todo-api/internal/common/db"
	"github.com/AlibekovAA/todo-api/internal/todo/domain"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
)

var ErrTodoNotFound = errors.New("todo not found")

const todosTable = "todos"

// Repository is owner-scoped: a task owned by someone else behaves as absent.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	FindByIDAndOwner(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Todo, error)
	UpdateCompleted(ctx context.Context, id domain.ID, ownerID userdomain.ID, completed bool) (domain.Todo, error)
	DeleteByIDAndOwner(ctx context.Context, id domain.ID, ownerID userdomain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Todo, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, text, completed, owner_id, created_at
		 FROM todos
		 WHERE owner_id = $1
		 ORDER BY created_at ASC, id ASC`,
		string(ownerID),
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list todos", todosTable, start)
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, db.HandleExecError(err, "list todos", todosTable, start)
		}
		todos = append(todos, todo)
	}
	if err := db.HandleExecError(rows.Err(), "list todos", todosTable, start); err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *PgRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO todos (id, text, completed, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, text, completed, owner_id, created_at`,
		string(todo.ID),
		todo.Text,
		todo.Completed,
		string(todo.OwnerID),
		todo.CreatedAt,
	)
	created, err := scanTodo(row)
	if err := db.HandleExecError(err, "create todo", todosTable, start); err != nil {
		return domain.Todo{}, err
	}
	return created, nil
}

func (r *PgRepository) FindByIDAndOwner(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, text, completed, owner_id, created_at
		 FROM todos
		 WHERE id = $1 AND owner_id = $2`,
		string(id),
		string(ownerID),
	)
	todo, err := scanTodo(row)
	if err := db.HandleQueryError(err, ErrTodoNotFound, "find todo", todosTable, start); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// UpdateCompleted checks ownership and writes in one statement.
func (r *PgRepository) UpdateCompleted(ctx context.Context, id domain.ID, ownerID userdomain.ID, completed bool) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE todos SET completed = $3
		 WHERE id = $1 AND owner_id = $2
		 RETURNING id, text, completed, owner_id, created_at`,
		string(id),
		string(ownerID),
		completed,
	)
	todo, err := scanTodo(row)
	if err := db.HandleQueryError(err, ErrTodoNotFound, "update todo", todosTable, start); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

func (r *PgRepository) DeleteByIDAndOwner(ctx context.Context, id domain.ID, ownerID userdomain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM todos WHERE id = $1 AND owner_id = $2`,
		string(id),
		string(ownerID),
	)
	if err := db.HandleExecError(err, "delete todo", todosTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func scanTodo(row pgx.Row) (domain.Todo, error) {
	var todo domain.Todo
	err := row.Scan(&todo.ID, &todo.Text, &todo.Completed, &todo.OwnerID, &todo.CreatedAt)
	return todo, err
}
