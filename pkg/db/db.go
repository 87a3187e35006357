package db

import (
	"context"
	"errors"
	"fmt"

	"todosvc/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxConns bounds the number of physical connections the pool hands out.
const maxConns = 5

var (
	TodoNotExistErr = errors.New("todo id doesn't exist")
	PoolBusyErr     = errors.New("no database connection available")
)

type DBStore struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*DBStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("problem parsing connection string: %w", err)
	}

	config.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("problem creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("problem connecting to db: %w", err)
	}

	return &DBStore{Pool: pool}, nil
}

func (db *DBStore) Close() {
	db.Pool.Close()
}

func (db *DBStore) CreateTodo(ctx context.Context, newTodo types.NewTodo) (types.Todo, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return types.Todo{}, fmt.Errorf("%w: %v", PoolBusyErr, err)
	}
	defer conn.Release()

	var todo types.Todo
	err = conn.QueryRow(ctx,
		"INSERT INTO todos (title, content) VALUES ($1, $2) RETURNING id, title, content;",
		newTodo.Title, newTodo.Content,
	).Scan(&todo.Id, &todo.Title, &todo.Content)
	if err != nil {
		return types.Todo{}, err
	}

	return todo, nil
}

func (db *DBStore) GetTodos(ctx context.Context) (types.Todos, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", PoolBusyErr, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, "SELECT id, title, content FROM todos")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := types.Todos{}

	for rows.Next() {
		var todo types.Todo
		if err := rows.Scan(&todo.Id, &todo.Title, &todo.Content); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

func (db *DBStore) GetTodo(ctx context.Context, id int) (types.Todo, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return types.Todo{}, fmt.Errorf("%w: %v", PoolBusyErr, err)
	}
	defer conn.Release()

	var todo types.Todo
	err = conn.QueryRow(ctx,
		"SELECT id, title, content FROM todos WHERE id = $1",
		id,
	).Scan(&todo.Id, &todo.Title, &todo.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Todo{}, TodoNotExistErr
	}
	if err != nil {
		return types.Todo{}, err
	}

	return todo, nil
}

func (db *DBStore) UpdateTodo(ctx context.Context, id int, updateTodo types.UpdateTodo) (types.Todo, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return types.Todo{}, fmt.Errorf("%w: %v", PoolBusyErr, err)
	}
	defer conn.Release()

	var todo types.Todo
	err = conn.QueryRow(ctx,
		"UPDATE todos SET title = $2, content = $3 WHERE id = $1 RETURNING id, title, content;",
		id, updateTodo.Title, updateTodo.Content,
	).Scan(&todo.Id, &todo.Title, &todo.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Todo{}, TodoNotExistErr
	}
	if err != nil {
		return types.Todo{}, err
	}

	return todo, nil
}

func (db *DBStore) DeleteTodo(ctx context.Context, id int) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", PoolBusyErr, err)
	}
	defer conn.Release()

	// row count discarded: deleting an id that isn't there still succeeds
	_, err = conn.Exec(ctx, "DELETE FROM todos WHERE id = $1;", id)
	if err != nil {
		return err
	}

	return nil
}
