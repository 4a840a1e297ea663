package auth

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *fbauth.Client
	projectID    string
)

func init() {
	// Load .env locally
	_ = godotenv.Load()

	ctx := context.Background()

	// Read the whole JSON blob out of the ENV
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		log.Fatal("❌ FIREBASE_CREDENTIALS_JSON must be set")
	}

	projectID = os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("❌ FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	config := &firebase.Config{ProjectID: projectID}

	var err error
	firebaseApp, err = firebase.NewApp(ctx, config, opt)
	if err != nil {
		log.Fatalf("❌ Error initializing Firebase app: %v", err)
	}

	firebaseAuth, err = firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("❌ Error getting Firebase Auth client: %v", err)
	}
}
