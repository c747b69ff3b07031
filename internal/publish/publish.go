// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package publish mirrors the run's artifacts to S3.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/staranto/h1bctl/internal/aws"
	"github.com/staranto/h1bctl/internal/config"
)

// PutObjectAPI is the slice of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// S3Publisher uploads files beneath s3://Bucket/Prefix.
type S3Publisher struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// ParseTarget splits an s3://bucket/prefix URI.
func ParseTarget(target string) (bucket, prefix string, err error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", "", fmt.Errorf("invalid publish target %q: %w", target, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid publish target %q: want s3://bucket[/prefix]", target)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// New builds a publisher for target using the default AWS credential chain.
// publish.region, publish.profile and publish.endpoint in cfg override it.
func New(ctx context.Context, cfg config.Type, target string) (*S3Publisher, error) {
	bucket, prefix, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	var opts []awsx.Option
	if r, _ := cfg.GetString("publish.region", ""); r != "" {
		opts = append(opts, awsx.WithRegion(r))
	}
	if p, _ := cfg.GetString("publish.profile", ""); p != "" {
		opts = append(opts, awsx.WithProfile(p))
	}
	if e, _ := cfg.GetString("publish.endpoint", ""); e != "" {
		opts = append(opts, awsx.WithEndpoint(e))
	}

	client, err := awsx.NewS3Client(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Publisher{Client: client, Bucket: bucket, Prefix: prefix}, nil
}

// Key is the object key a local file is uploaded to.
func (p *S3Publisher) Key(file string) string {
	return path.Join(p.Prefix, filepath.Base(file))
}

// Publish uploads each file in turn and stops at the first failure.
func (p *S3Publisher) Publish(ctx context.Context, files ...string) error {
	for _, file := range files {
		if err := p.put(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

func (p *S3Publisher) put(ctx context.Context, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	key := p.Key(file)
	if _, err := p.Client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(p.Bucket),
		Key:         awsv2.String(key),
		Body:        f,
		ContentType: awsv2.String("text/csv"),
	}); err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", file, p.Bucket, key, err)
	}

	log.Debugf("uploaded %s to s3://%s/%s", file, p.Bucket, key)
	return nil
}
