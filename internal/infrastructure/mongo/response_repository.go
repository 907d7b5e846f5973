package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyapp "github.com/surveyflow/surveyflow-services/api/internal/survey/application"
	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

// ResponseRepository implements surveyapp.ResponseRepository over a
// side collection, keeping walk outcomes out of the survey documents.
type ResponseRepository struct {
	responses *mongo.Collection
}

// NewResponseRepository binds the response collection.
func NewResponseRepository(db *mongo.Database, collection string) *ResponseRepository {
	return &ResponseRepository{responses: db.Collection(collection)}
}

// Create inserts a walk outcome and writes the generated id back.
func (r *ResponseRepository) Create(ctx context.Context, response *surveydomain.Response) error {
	surveyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(response.SurveyID))
	if err != nil {
		return surveyapp.ErrSurveyNotFound
	}
	doc := ResponseDocument{
		ID:        primitive.NewObjectID(),
		SurveyID:  surveyID,
		Outcome:   string(response.Outcome),
		Answers:   response.Answers,
		CreatedAt: response.CreatedAt,
	}
	if _, err := r.responses.InsertOne(ctx, doc); err != nil {
		return err
	}
	response.ID = doc.ID.Hex()
	return nil
}

// FindBySurvey returns the survey's responses, newest first.
func (r *ResponseRepository) FindBySurvey(ctx context.Context, surveyID string) ([]surveydomain.Response, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(surveyID))
	if err != nil {
		return nil, surveyapp.ErrSurveyNotFound
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.responses.Find(ctx, bson.M{"surveyId": id}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := make([]surveydomain.Response, 0)
	for cursor.Next(ctx) {
		var doc ResponseDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		responses = append(responses, mapResponseDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return responses, nil
}

// CountBySurveys counts responses across the given survey ids.
func (r *ResponseRepository) CountBySurveys(ctx context.Context, surveyIDs []string) (int, error) {
	ids := make([]primitive.ObjectID, 0, len(surveyIDs))
	for _, raw := range surveyIDs {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := r.responses.CountDocuments(ctx, bson.M{"surveyId": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
