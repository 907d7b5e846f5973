package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyapp "github.com/surveyflow/surveyflow-services/api/internal/survey/application"
	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

// SurveyRepository implements surveyapp.SurveyRepository over MongoDB.
type SurveyRepository struct {
	surveys *mongo.Collection
}

// NewSurveyRepository binds the survey collection.
func NewSurveyRepository(db *mongo.Database, collection string) *SurveyRepository {
	return &SurveyRepository{surveys: db.Collection(collection)}
}

// Find returns one page of the owner's surveys, newest first, plus the
// total count for the pagination footer.
func (r *SurveyRepository) Find(ctx context.Context, ownerID string, paging surveyapp.Paging) ([]surveydomain.Survey, int, error) {
	owner, err := primitive.ObjectIDFromHex(strings.TrimSpace(ownerID))
	if err != nil {
		return nil, 0, err
	}
	filter := bson.M{"ownerId": owner}

	total, err := r.surveys.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(int64((paging.Page - 1) * paging.Limit))
		}
	}

	cursor, err := r.surveys.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	surveys := make([]surveydomain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		surveys = append(surveys, mapSurveyDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return surveys, int(total), nil
}

// FindAllByOwner returns every survey of the owner, for analytics.
func (r *SurveyRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]surveydomain.Survey, error) {
	owner, err := primitive.ObjectIDFromHex(strings.TrimSpace(ownerID))
	if err != nil {
		return nil, err
	}

	cursor, err := r.surveys.Find(ctx, bson.M{"ownerId": owner})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := make([]surveydomain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		surveys = append(surveys, mapSurveyDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return surveys, nil
}

// FindByID loads a single survey aggregate.
func (r *SurveyRepository) FindByID(ctx context.Context, id string) (*surveydomain.Survey, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, surveyapp.ErrSurveyNotFound
	}
	var doc SurveyDocument
	err = r.surveys.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, surveyapp.ErrSurveyNotFound
	}
	if err != nil {
		return nil, err
	}
	survey := mapSurveyDocument(doc)
	return &survey, nil
}

// Create inserts a new survey and writes the generated id back.
func (r *SurveyRepository) Create(ctx context.Context, survey *surveydomain.Survey) error {
	owner, err := primitive.ObjectIDFromHex(strings.TrimSpace(survey.OwnerID))
	if err != nil {
		return err
	}
	doc := SurveyDocument{
		ID:          primitive.NewObjectID(),
		OwnerID:     owner,
		Title:       survey.Title,
		Description: survey.Description,
		Status:      string(survey.Status),
		Nodes:       mapNodesToDocuments(survey.Nodes),
		Edges:       mapEdgesToDocuments(survey.Edges),
		CreatedAt:   survey.CreatedAt,
		UpdatedAt:   survey.UpdatedAt,
	}
	if _, err := r.surveys.InsertOne(ctx, doc); err != nil {
		return err
	}
	survey.ID = doc.ID.Hex()
	return nil
}

// Update replaces the mutable fields of the stored document.
func (r *SurveyRepository) Update(ctx context.Context, survey *surveydomain.Survey) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(survey.ID))
	if err != nil {
		return surveyapp.ErrSurveyNotFound
	}

	update := bson.M{
		"title":       survey.Title,
		"description": survey.Description,
		"status":      string(survey.Status),
		"nodes":       mapNodesToDocuments(survey.Nodes),
		"edges":       mapEdgesToDocuments(survey.Edges),
		"updatedAt":   survey.UpdatedAt,
	}
	result, err := r.surveys.UpdateByID(ctx, objectID, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return surveyapp.ErrSurveyNotFound
	}
	return nil
}

// Delete removes the survey document.
func (r *SurveyRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return surveyapp.ErrSurveyNotFound
	}
	result, err := r.surveys.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return surveyapp.ErrSurveyNotFound
	}
	return nil
}
