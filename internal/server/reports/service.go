// Package reports exports instructor-facing class reports to S3-compatible
// object storage and hands back presigned download links.
package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	sc "github.com/dmitrijs2005/moodjournal/internal/server/config"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// EntryLister is the slice of the journal engine the report builder needs.
type EntryLister interface {
	ListClassEntries(ctx context.Context, classID string) ([]*models.Entry, error)
}

type Service struct {
	lister EntryLister
	config *sc.Config
}

func NewService(lister EntryLister, config *sc.Config) *Service {
	return &Service{lister: lister, config: config}
}

// storageKey shards report objects by class and generation date.
func storageKey(classID string) string {
	d := time.Now()
	return fmt.Sprintf("classes/%s/%d/%d/%d/%v.csv", classID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) getClient() (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Export builds the CSV report for a class, uploads it, and returns a
// presigned GET URL valid for the configured TTL. Listing errors (class
// not found, strict-mode date failures) propagate unchanged so the caller
// maps them like any other read.
func (s *Service) Export(ctx context.Context, classID string) (string, error) {

	entries, err := s.lister.ListClassEntries(ctx, classID)
	if err != nil {
		return "", err
	}

	body, err := buildCSV(entries)
	if err != nil {
		return "", err
	}

	client, err := s.getClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := storageKey(classID)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}

	presignClient := s3.NewPresignClient(client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ReportURLTTL))
	if err != nil {
		return "", fmt.Errorf("presign report: %w", err)
	}

	return req.URL, nil
}

// buildCSV renders the ordered class entries with a header row.
func buildCSV(entries []*models.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"student_id", "date", "emotion", "score", "text", "suggestion"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		rec := []string{
			e.StudentID,
			e.Date,
			string(e.Emotion),
			strconv.FormatFloat(e.Score, 'f', -1, 64),
			e.Text,
			e.Suggestion,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
