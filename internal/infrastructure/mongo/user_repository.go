package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	authapp "github.com/surveyflow/surveyflow-services/api/internal/auth/application"
	authdomain "github.com/surveyflow/surveyflow-services/api/internal/auth/domain"
)

// UserRepository implements authapp.UserRepository over MongoDB.
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository binds the user collection.
func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	return &UserRepository{users: db.Collection(collection)}
}

// FindByEmail looks up an account by its (lowercased) email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	var doc UserDocument
	err := r.users.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, authapp.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

// FindByID looks up an account by its hex object id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, authapp.ErrUserNotFound
	}
	var doc UserDocument
	err = r.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, authapp.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

// Create inserts a new account and writes the generated id back.
func (r *UserRepository) Create(ctx context.Context, user *authdomain.User) error {
	doc := UserDocument{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email.String(),
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}
