package services

import (
	"strings"

	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

const chatbotFallback = "Sorry, I don't have an answer for that yet. " +
	"Please reach out through the contact form and we'll get back to you."

// ChatbotService answers visitor questions by keyword-matching against the
// FAQ table. The entry with the most keyword hits wins.
type ChatbotService struct {
	db *gorm.DB
}

func NewChatbotService(db *gorm.DB) *ChatbotService {
	return &ChatbotService{db: db}
}

// Answer returns the best-matching FAQ answer and whether anything matched.
func (s *ChatbotService) Answer(question string) (string, bool, error) {
	var entries []models.FAQEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return "", false, err
	}

	q := strings.ToLower(question)
	best := ""
	bestHits := 0
	for _, entry := range entries {
		hits := 0
		for _, kw := range strings.Split(entry.Keywords, ",") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(q, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = entry.Answer
		}
	}

	if bestHits == 0 {
		return chatbotFallback, false, nil
	}
	return best, true, nil
}

// SeedFAQ inserts the starter entries on an empty table so the chatbot is
// useful on a fresh install.
func (s *ChatbotService) SeedFAQ() error {
	var count int64
	if err := s.db.Model(&models.FAQEntry{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.FAQEntry{
		{
			Question: "How long does shipping take?",
			Answer:   "Orders are dispatched within 2 business days and usually arrive within 5-7 days.",
			Keywords: "shipping,delivery,arrive,how long",
		},
		{
			Question: "Can I return an item?",
			Answer:   "Unworn items can be returned within 14 days of delivery for a full refund.",
			Keywords: "return,refund,exchange",
		},
		{
			Question: "Is your jewelry real gold?",
			Answer:   "Every piece lists its material on the product page; gold items are stamped and certified.",
			Keywords: "gold,silver,material,real,certified",
		},
		{
			Question: "How do I care for my jewelry?",
			Answer:   "Keep pieces away from perfume and water, and store them in the pouch we ship them in.",
			Keywords: "care,clean,polish,tarnish",
		},
	}
	return s.db.Create(&defaults).Error
}
