package utility

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *auth.Client
)

// findRootDir tìm thư mục gốc project (thư mục chứa config/env)
func findRootDir() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("không tìm thấy thư mục gốc project")
		}
		currentDir = parentDir
	}
}

// InitFirebase khởi tạo Firebase Admin SDK.
// Identity của seller do Firebase quản lý — _id trong collection sellers là Firebase UID.
func InitFirebase(projectID, credentialsPath string) error {
	if projectID == "" || credentialsPath == "" {
		return fmt.Errorf("thiếu FIREBASE_PROJECT_ID hoặc FIREBASE_CREDENTIALS_PATH")
	}

	// Resolve đường dẫn credentials: relative tính từ thư mục gốc project
	if !filepath.IsAbs(credentialsPath) {
		rootDir, err := findRootDir()
		if err != nil {
			return fmt.Errorf("không resolve được đường dẫn credentials: %w", err)
		}
		credentialsPath = filepath.Join(rootDir, credentialsPath)
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return fmt.Errorf("khởi tạo Firebase app thất bại: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("khởi tạo Firebase auth thất bại: %w", err)
	}

	firebaseApp = app
	firebaseAuth = authClient
	return nil
}

// GetFirebaseAuth trả về Firebase auth client, nil nếu chưa init
func GetFirebaseAuth() *auth.Client {
	return firebaseAuth
}

// VerifyIDToken xác thực Firebase ID token và trả về token đã decode
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth not initialized")
	}
	return firebaseAuth.VerifyIDToken(ctx, idToken)
}
