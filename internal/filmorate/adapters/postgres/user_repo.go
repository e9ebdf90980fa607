package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (email, login, name, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	created := user.Clone()
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	).Scan(&created.ID)

	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.Debug(ctx, "user created", zap.Int64("userID", created.ID))
	return created, nil
}

// Update обновляет информацию о пользователе.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET email = $2, login = $3, name = $4, birthday = $5
        WHERE id = $1
    `

	result, err := conn(ctx, r.pool).Exec(ctx, query,
		user.ID,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	)
	if err != nil {
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found", zap.Int64("userID", user.ID))
		return nil, entities.ErrUserNotFound
	}

	return user.Clone(), nil
}

// FindByID находит пользователя по ID. Отсутствие пользователя не является ошибкой.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT id, email, login, name, birthday
        FROM users
        WHERE id = $1
    `

	var user entities.User
	err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.Name,
		&user.Birthday,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("userID", id))
			return nil, nil
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return &user, nil
}

// FindByIDs возвращает существующих пользователей из ids по возрастанию id.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByIDs"))

	rows, err := conn(ctx, r.pool).Query(ctx, `
        SELECT id, email, login, name, birthday
        FROM users
        WHERE id = ANY($1)
        ORDER BY id
    `, ids)
	if err != nil {
		log.Error(ctx, "error querying users by ids", zap.Error(err))
		return nil, fmt.Errorf("error querying users by ids: %w", err)
	}

	return scanUsers(rows)
}

// List возвращает всех пользователей по возрастанию id.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	rows, err := conn(ctx, r.pool).Query(ctx, `
        SELECT id, email, login, name, birthday
        FROM users
        ORDER BY id
    `)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return scanUsers(rows)
}

// Delete удаляет пользователя. Ребра дружбы и отметки удаляются каскадно.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	result, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found", zap.Int64("userID", id))
		return entities.ErrUserNotFound
	}
	return nil
}

func scanUsers(rows pgx.Rows) ([]*entities.User, error) {
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
