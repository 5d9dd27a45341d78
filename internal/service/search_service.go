package service

import (
	"html"
	"log"
	"strings"

	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService maintains the Meilisearch indexes: the member directory
// (approved members only) and published news posts.
type SearchService interface {
	IndexMember(user *model.User) error
	RemoveMember(id string) error
	IndexNews(post *model.NewsPost) error
	RemoveNews(id string) error
	SearchMembers(query string, limit int) ([]map[string]any, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	memberFilterable := []any{"department", "hall", "blood_group"}
	if _, err := s.client.Index("members").UpdateFilterableAttributes(&memberFilterable); err != nil {
		log.Printf("Failed to update members filterable attributes: %v", err)
	}

	memberSortable := []string{"full_name"}
	if _, err := s.client.Index("members").UpdateSortableAttributes(&memberSortable); err != nil {
		log.Printf("Failed to update members sortable attributes: %v", err)
	}

	newsSortable := []string{"published_at"}
	if _, err := s.client.Index("news").UpdateSortableAttributes(&newsSortable); err != nil {
		log.Printf("Failed to update news sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliMemberDoc struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Nickname   string `json:"nickname"`
	Department string `json:"department"`
	Hall       string `json:"hall"`
	BloodGroup string `json:"blood_group"`
	Profession string `json:"profession"`
	AvatarURL  string `json:"avatar_url"`
}

type meiliNewsDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Body        string `json:"body"`
	PublishedAt int64  `json:"published_at"`
}

// cleanContentForIndex strips markup so the index holds plain text.
func (s *searchService) cleanContentForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexMember(user *model.User) error {
	doc := meiliMemberDoc{
		ID:        user.ID.String(),
		Username:  user.Username,
		AvatarURL: getStringOrEmpty(user.AvatarURL),
	}

	if user.Profile != nil {
		doc.FullName = user.Profile.FullName
		doc.Nickname = user.Profile.Nickname
		doc.Department = user.Profile.Department
		doc.Hall = user.Profile.Hall
		doc.BloodGroup = user.Profile.BloodGroup
		doc.Profession = getStringOrEmpty(user.Profile.Profession)
	}

	task, err := s.client.Index("members").AddDocuments([]meiliMemberDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed member %s, task id: %d", user.ID, task.TaskUID)
	return nil
}

func (s *searchService) RemoveMember(id string) error {
	_, err := s.client.Index("members").DeleteDocument(id)
	return err
}

func (s *searchService) IndexNews(post *model.NewsPost) error {
	doc := meiliNewsDoc{
		ID:    post.ID.String(),
		Title: post.Title,
		Slug:  post.Slug,
		Body:  s.cleanContentForIndex(post.Body),
	}
	if post.PublishedAt != nil {
		doc.PublishedAt = post.PublishedAt.Unix()
	}

	task, err := s.client.Index("news").AddDocuments([]meiliNewsDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed news post %s, task id: %d", post.ID, task.TaskUID)
	return nil
}

func (s *searchService) RemoveNews(id string) error {
	_, err := s.client.Index("news").DeleteDocument(id)
	return err
}

func (s *searchService) SearchMembers(query string, limit int) ([]map[string]any, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	resp, err := s.client.Index("members").Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	return decodeHits(resp.Hits), nil
}

// decodeHits converts raw search hits into plain maps for the JSON response.
// A hit that fails to decode is logged and skipped.
func decodeHits(raw []meilisearch.Hit) []map[string]any {
	hits := make([]map[string]any, 0, len(raw))
	for _, hit := range raw {
		var m map[string]any
		if err := hit.Decode(&m); err != nil {
			log.Printf("Failed to decode search hit: %v", err)
			continue
		}
		hits = append(hits, m)
	}
	return hits
}

func getStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
