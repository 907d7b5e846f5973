package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authdomain "github.com/surveyflow/surveyflow-services/api/internal/auth/domain"
	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

// UserDocument is the MongoDB schema of a registered account.
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// NodeDocument is one flow graph node embedded in a survey document.
type NodeDocument struct {
	ID   string            `bson:"id"`
	Type string            `bson:"type"`
	Data map[string]string `bson:"data,omitempty"`
}

// EdgeDocument is one directed connection embedded in a survey document.
type EdgeDocument struct {
	ID        string `bson:"id,omitempty"`
	Source    string `bson:"source"`
	Target    string `bson:"target"`
	Condition string `bson:"condition,omitempty"`
}

// SurveyDocument is the MongoDB schema of a survey aggregate.
type SurveyDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	OwnerID     primitive.ObjectID `bson:"ownerId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	Nodes       []NodeDocument     `bson:"nodes"`
	Edges       []EdgeDocument     `bson:"edges"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// ResponseDocument records one flow walk outcome.
type ResponseDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	SurveyID  primitive.ObjectID `bson:"surveyId"`
	Outcome   string             `bson:"outcome"`
	Answers   map[string]string  `bson:"answers,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func mapUserDocument(doc UserDocument) authdomain.User {
	return authdomain.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        authdomain.Email(doc.Email),
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}
}

func mapSurveyDocument(doc SurveyDocument) surveydomain.Survey {
	nodes := make([]surveydomain.Node, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, surveydomain.Node{
			ID:   n.ID,
			Type: surveydomain.NodeType(n.Type),
			Data: n.Data,
		})
	}
	edges := make([]surveydomain.Edge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edges = append(edges, surveydomain.Edge{
			ID:        e.ID,
			Source:    e.Source,
			Target:    e.Target,
			Condition: e.Condition,
		})
	}
	return surveydomain.Survey{
		ID:          doc.ID.Hex(),
		OwnerID:     doc.OwnerID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Status:      surveydomain.Status(doc.Status),
		Nodes:       nodes,
		Edges:       edges,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func mapNodesToDocuments(nodes []surveydomain.Node) []NodeDocument {
	docs := make([]NodeDocument, 0, len(nodes))
	for _, n := range nodes {
		docs = append(docs, NodeDocument{ID: n.ID, Type: string(n.Type), Data: n.Data})
	}
	return docs
}

func mapEdgesToDocuments(edges []surveydomain.Edge) []EdgeDocument {
	docs := make([]EdgeDocument, 0, len(edges))
	for _, e := range edges {
		docs = append(docs, EdgeDocument{ID: e.ID, Source: e.Source, Target: e.Target, Condition: e.Condition})
	}
	return docs
}

func mapResponseDocument(doc ResponseDocument) surveydomain.Response {
	return surveydomain.Response{
		ID:        doc.ID.Hex(),
		SurveyID:  doc.SurveyID.Hex(),
		Outcome:   surveydomain.NodeType(doc.Outcome),
		Answers:   doc.Answers,
		CreatedAt: doc.CreatedAt,
	}
}
