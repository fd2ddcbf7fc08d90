package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

const (
	languagesCollection = "languages"
	lectionsCollection  = "lections"
)

// ContentRepository persists languages and lections in the content database.
// Lection content is stored as the verbatim JSON string the client sent; this
// layer never parses it.
type ContentRepository struct {
	languages *mongo.Collection
	lections  *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{
		languages: db.Collection(languagesCollection),
		lections:  db.Collection(lectionsCollection),
	}
}

type languageDoc struct {
	Name      string `bson:"name"`
	CreatedAt int64  `bson:"created_at"`
	CreatedBy string `bson:"created_by"`
}

type lectionDoc struct {
	ID          string `bson:"id"`
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`
	Language    string `bson:"language"`
	Difficulty  string `bson:"difficulty,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	CreatedBy   string `bson:"created_by"`
	Content     string `bson:"content"`
}

func (d *lectionDoc) toDomain() *domain.Lection {
	return &domain.Lection{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Language:    d.Language,
		Difficulty:  d.Difficulty,
		CreatedAt:   unixToTime(d.CreatedAt),
		CreatedBy:   d.CreatedBy,
		Content:     json.RawMessage(d.Content),
	}
}

func (r *ContentRepository) InsertLanguage(ctx context.Context, language *domain.Language) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.languages.InsertOne(ctx, languageDoc{
		Name:      language.Name,
		CreatedAt: language.CreatedAt.Unix(),
		CreatedBy: language.CreatedBy,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrLanguageExists
		}
		return fmt.Errorf("insert language: %w", err)
	}
	return nil
}

func (r *ContentRepository) FindLanguage(ctx context.Context, name string) (*domain.Language, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc languageDoc
	if err := r.languages.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLanguageNotFound
		}
		return nil, fmt.Errorf("find language: %w", err)
	}

	return &domain.Language{
		Name:      doc.Name,
		CreatedAt: unixToTime(doc.CreatedAt),
		CreatedBy: doc.CreatedBy,
	}, nil
}

func (r *ContentRepository) DeleteLanguage(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.languages.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete language: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLanguageNotFound
	}
	return nil
}

func (r *ContentRepository) ListLanguages(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.languages.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer cursor.Close(ctx)

	names := []string{}
	for cursor.Next(ctx) {
		var doc languageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode language: %w", err)
		}
		names = append(names, doc.Name)
	}
	return names, cursor.Err()
}

func (r *ContentRepository) InsertLection(ctx context.Context, lection *domain.Lection) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.lections.InsertOne(ctx, lectionDoc{
		ID:          lection.ID,
		Title:       lection.Title,
		Description: lection.Description,
		Language:    lection.Language,
		Difficulty:  lection.Difficulty,
		CreatedAt:   lection.CreatedAt.Unix(),
		CreatedBy:   lection.CreatedBy,
		Content:     string(lection.Content),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrLectionExists
		}
		return fmt.Errorf("insert lection: %w", err)
	}
	return nil
}

func (r *ContentRepository) FindLectionByTitle(ctx context.Context, language, title string) (*domain.Lection, error) {
	return r.findLection(ctx, bson.M{"language": language, "title": title})
}

func (r *ContentRepository) FindLectionByID(ctx context.Context, language, id string) (*domain.Lection, error) {
	return r.findLection(ctx, bson.M{"language": language, "id": id})
}

func (r *ContentRepository) findLection(ctx context.Context, filter bson.M) (*domain.Lection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc lectionDoc
	if err := r.lections.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLectionNotFound
		}
		return nil, fmt.Errorf("find lection: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ContentRepository) ReplaceLectionContent(ctx context.Context, language, title string, content json.RawMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.lections.UpdateOne(ctx,
		bson.M{"language": language, "title": title},
		bson.M{"$set": bson.M{"content": string(content)}},
	)
	if err != nil {
		return fmt.Errorf("replace lection content: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLectionNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteLection(ctx context.Context, language, title string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.lections.DeleteOne(ctx, bson.M{"language": language, "title": title})
	if err != nil {
		return fmt.Errorf("delete lection: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLectionNotFound
	}
	return nil
}

func (r *ContentRepository) ListLections(ctx context.Context, language string) ([]domain.LectionSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.lections.Find(ctx, bson.M{"language": language})
	if err != nil {
		return nil, fmt.Errorf("list lections: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []domain.LectionSummary{}
	for cursor.Next(ctx) {
		var doc lectionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lection: %w", err)
		}
		summaries = append(summaries, domain.LectionSummary{ID: doc.ID, Title: doc.Title})
	}
	return summaries, cursor.Err()
}

// EnsureIndexes creates the unique language-name index and the compound
// language+title index that scopes lection title uniqueness per language.
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.languages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: uniqueIndex()},
	})
	if err != nil {
		return err
	}

	_, err = r.lections.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "language", Value: 1}, {Key: "title", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: uniqueIndex()},
	})
	return err
}
