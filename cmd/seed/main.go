// Command seed loads a YAML fixture of users and surveys into MongoDB
// so a fresh environment has something to log in with and edit.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	authapp "github.com/surveyflow/surveyflow-services/api/internal/auth/application"
	authdomain "github.com/surveyflow/surveyflow-services/api/internal/auth/domain"
	"github.com/surveyflow/surveyflow-services/api/internal/config"
	"github.com/surveyflow/surveyflow-services/api/internal/flow"
	mongodoc "github.com/surveyflow/surveyflow-services/api/internal/infrastructure/mongo"
	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

type fixtureFile struct {
	Users   []fixtureUser   `yaml:"users"`
	Surveys []fixtureSurvey `yaml:"surveys"`
}

type fixtureUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type fixtureSurvey struct {
	Owner       string        `yaml:"owner"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Status      string        `yaml:"status"`
	Nodes       []fixtureNode `yaml:"nodes"`
	Edges       []fixtureEdge `yaml:"edges"`
}

type fixtureNode struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Label string `yaml:"label"`
}

type fixtureEdge struct {
	ID        string `yaml:"id"`
	Source    string `yaml:"source"`
	Target    string `yaml:"target"`
	Condition string `yaml:"condition"`
}

func main() {
	fixturePath := flag.String("fixture", "seed.yaml", "path to the YAML fixture file")
	flag.Parse()

	logger := log.New(os.Stdout, "[surveyflow-seed] ", log.LstdFlags)

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		logger.Fatalf("failed to read fixture: %v", err)
	}
	var fixture fixtureFile
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		logger.Fatalf("failed to parse fixture: %v", err)
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("error disconnecting MongoDB: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	users := mongodoc.NewUserRepository(db, cfg.UserCollection)
	surveys := mongodoc.NewSurveyRepository(db, cfg.SurveyCollection)

	ownerIDs := make(map[string]string, len(fixture.Users))
	for _, fu := range fixture.Users {
		id, err := seedUser(ctx, users, fu)
		if err != nil {
			logger.Fatalf("failed to seed user %s: %v", fu.Email, err)
		}
		ownerIDs[fu.Email] = id
	}
	logger.Printf("seeded %d users", len(ownerIDs))

	seeded := 0
	for _, fs := range fixture.Surveys {
		ownerID, ok := ownerIDs[fs.Owner]
		if !ok {
			logger.Fatalf("survey %q references unknown owner %q", fs.Title, fs.Owner)
		}
		if err := seedSurvey(ctx, surveys, ownerID, fs); err != nil {
			logger.Fatalf("failed to seed survey %q: %v", fs.Title, err)
		}
		seeded++
	}
	logger.Printf("seeded %d surveys", seeded)
}

// seedUser creates the account unless the email is already registered.
func seedUser(ctx context.Context, users *mongodoc.UserRepository, fu fixtureUser) (string, error) {
	email, err := authdomain.NewEmail(fu.Email)
	if err != nil {
		return "", err
	}

	if existing, err := users.FindByEmail(ctx, email.String()); err == nil {
		return existing.ID, nil
	} else if !errors.Is(err, authapp.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(fu.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user := &authdomain.User{
		Name:         fu.Name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

func seedSurvey(ctx context.Context, surveys *mongodoc.SurveyRepository, ownerID string, fs fixtureSurvey) error {
	status, ok := surveydomain.ParseStatus(fs.Status)
	if !ok {
		status = surveydomain.StatusDraft
	}

	nodes := make([]surveydomain.Node, 0, len(fs.Nodes))
	for _, fn := range fs.Nodes {
		id := fn.ID
		if id == "" {
			var err error
			if id, err = flow.NewNodeID(); err != nil {
				return err
			}
		}
		nodes = append(nodes, surveydomain.Node{
			ID:   id,
			Type: surveydomain.NodeType(fn.Type),
			Data: map[string]string{"label": fn.Label},
		})
	}
	edges := make([]surveydomain.Edge, 0, len(fs.Edges))
	for _, fe := range fs.Edges {
		id := fe.ID
		if id == "" {
			var err error
			if id, err = flow.NewEdgeID(); err != nil {
				return err
			}
		}
		edges = append(edges, surveydomain.Edge{
			ID:        id,
			Source:    fe.Source,
			Target:    fe.Target,
			Condition: fe.Condition,
		})
	}

	now := time.Now().UTC()
	return surveys.Create(ctx, &surveydomain.Survey{
		OwnerID:     ownerID,
		Title:       fs.Title,
		Description: fs.Description,
		Status:      status,
		Nodes:       nodes,
		Edges:       edges,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}
