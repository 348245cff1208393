package mysql

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
	"github.com/mkopp/mysite-backend/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)
var _ domain.UserResolver = (*userRepository)(nil)

// NewUserRepository will create an implementation of user.Repository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return domain.User{}, translateError(err)
	}

	return user.ToDomain(), nil
}

// Resolve implements the identity boundary the comment and reaction
// services depend on.
func (m *userRepository) Resolve(ctx context.Context, id uuid.UUID) (domain.UserInfo, error) {
	user, err := m.GetByID(ctx, id)
	if err != nil {
		return domain.UserInfo{}, err
	}
	return user.Info(), nil
}

func (m *userRepository) Insert(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	userModel := model.NewUserFromDomain(u)

	result := m.DB.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return translateError(result.Error)
	}

	return nil
}

func (m *userRepository) Update(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	err := m.DB.WithContext(ctx).Model(userModel).Updates(userModel).Error
	return translateError(err)
}

func (m *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return domain.User{}, translateError(err)
	}

	return user.ToDomain(), nil
}

func (m *userRepository) GetByIDs(ctx context.Context, uids []uuid.UUID) ([]domain.User, error) {
	var users []model.User
	err := m.DB.WithContext(ctx).Model(&model.User{}).Where("id in ?", uids).Find(&users).Error
	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, translateError(err)
}
