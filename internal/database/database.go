// Package database owns the DynamoDB connection. All records live in a single
// table keyed by (class, itemID) with secondary indexes for username lookups
// and flagged-post queries.
package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"songboard/internal/config"
)

// Class attribute values, the partition half of every item key.
const (
	ClassUser = "user"
	ClassPost = "post"
)

type Client struct {
	DB            *dynamodb.Client
	Table         string
	UsernameIndex string
	FlaggedIndex  string
}

func Connect(ctx context.Context, cfg *config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	db := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
		}
	})

	client := &Client{
		DB:            db,
		Table:         cfg.AWS.Table,
		UsernameIndex: cfg.AWS.UsernameIndex,
		FlaggedIndex:  cfg.AWS.FlaggedIndex,
	}

	if err := client.HealthCheck(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

// HealthCheck verifies the table exists and is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.DB.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(c.Table),
	})
	if err != nil {
		return fmt.Errorf("describing table %s: %w", c.Table, err)
	}
	return nil
}
