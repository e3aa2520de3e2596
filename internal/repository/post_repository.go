package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"songboard/internal/database"
	"songboard/internal/models"
)

type postRepository struct {
	db *database.Client
}

func NewPostRepository(db *database.Client) PostRepository {
	return &postRepository{db: db}
}

func postKey(postID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"class":  &types.AttributeValueMemberS{Value: database.ClassPost},
		"itemID": &types.AttributeValueMemberS{Value: postID},
	}
}

func (r *postRepository) PutPost(ctx context.Context, post *models.Post) error {
	item, err := attributevalue.MarshalMap(post)
	if err != nil {
		return fmt.Errorf("marshaling post: %w", err)
	}

	_, err = r.db.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.db.Table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting post: %w", err)
	}

	return nil
}

func (r *postRepository) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	out, err := r.db.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table),
		Key:       postKey(postID),
	})
	if err != nil {
		return nil, fmt.Errorf("getting post %s: %w", postID, err)
	}

	if len(out.Item) == 0 {
		return nil, nil
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(out.Item, &post); err != nil {
		return nil, fmt.Errorf("unmarshaling post %s: %w", postID, err)
	}

	return &post, nil
}

func (r *postRepository) ScanPosts(ctx context.Context) ([]models.Post, error) {
	filter := expression.Name("class").Equal(expression.Value(database.ClassPost))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("building scan expression: %w", err)
	}

	var posts []models.Post
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.db.DB.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.db.Table),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scanning posts: %w", err)
		}

		var page []models.Post
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshaling posts: %w", err)
		}
		posts = append(posts, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return posts, nil
}

func (r *postRepository) QueryFlagged(ctx context.Context, isFlagged int) ([]models.Post, error) {
	keyCond := expression.Key("class").Equal(expression.Value(database.ClassPost)).
		And(expression.Key("isFlagged").Equal(expression.Value(isFlagged)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("building query expression: %w", err)
	}

	out, err := r.db.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.db.Table),
		IndexName:                 aws.String(r.db.FlaggedIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("querying flagged posts: %w", err)
	}

	var posts []models.Post
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &posts); err != nil {
		return nil, fmt.Errorf("unmarshaling flagged posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) UpdatePost(ctx context.Context, postID string, attrs PostAttributes) error {
	update := expression.
		Set(expression.Name("description"), expression.Value(attrs.Description)).
		Set(expression.Name("title"), expression.Value(attrs.Title)).
		Set(expression.Name("score"), expression.Value(attrs.Score)).
		Set(expression.Name("isFlagged"), expression.Value(attrs.IsFlagged))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("building update expression: %w", err)
	}

	_, err = r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.db.Table),
		Key:                       postKey(postID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("updating post %s: %w", postID, err)
	}

	return nil
}

func (r *postRepository) UpdateFlag(ctx context.Context, postID string, flag int) error {
	update := expression.Set(expression.Name("isFlagged"), expression.Value(flag))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("building flag expression: %w", err)
	}

	_, err = r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.db.Table),
		Key:                       postKey(postID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("flagging post %s: %w", postID, err)
	}

	return nil
}

func (r *postRepository) AppendLike(ctx context.Context, postID string, like models.Like) error {
	likes, err := attributevalue.Marshal([]models.Like{like})
	if err != nil {
		return fmt.Errorf("marshaling like: %w", err)
	}

	_, err = r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.db.Table),
		Key:              postKey(postID),
		UpdateExpression: aws.String("SET likedBy = list_append(likedBy, :l)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":l": likes,
		},
	})
	if err != nil {
		return fmt.Errorf("appending like to post %s: %w", postID, err)
	}

	return nil
}

// RemoveLike deletes the vote at the given list position. There is no
// conditional guard; see the concurrency note on service.PostService.CheckLike.
func (r *postRepository) RemoveLike(ctx context.Context, postID string, index int) error {
	_, err := r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.db.Table),
		Key:              postKey(postID),
		UpdateExpression: aws.String(fmt.Sprintf("REMOVE likedBy[%d]", index)),
	})
	if err != nil {
		return fmt.Errorf("removing like %d from post %s: %w", index, postID, err)
	}

	return nil
}

func (r *postRepository) AppendReply(ctx context.Context, postID string, reply models.Reply) error {
	replies, err := attributevalue.Marshal([]models.Reply{reply})
	if err != nil {
		return fmt.Errorf("marshaling reply: %w", err)
	}

	_, err = r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.db.Table),
		Key:              postKey(postID),
		UpdateExpression: aws.String("SET replies = list_append(replies, :r)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": replies,
		},
	})
	if err != nil {
		return fmt.Errorf("appending reply to post %s: %w", postID, err)
	}

	return nil
}

// SetReplies overwrites the full replies list. Reply deletion is a read,
// filter, rewrite sequence because the store has no keyed list removal.
func (r *postRepository) SetReplies(ctx context.Context, postID string, replies []models.Reply) error {
	if replies == nil {
		replies = []models.Reply{}
	}

	value, err := attributevalue.Marshal(replies)
	if err != nil {
		return fmt.Errorf("marshaling replies: %w", err)
	}

	_, err = r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.db.Table),
		Key:              postKey(postID),
		UpdateExpression: aws.String("SET replies = :r"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": value,
		},
	})
	if err != nil {
		return fmt.Errorf("rewriting replies of post %s: %w", postID, err)
	}

	return nil
}

func (r *postRepository) DeletePost(ctx context.Context, postID string) error {
	_, err := r.db.DB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table),
		Key:       postKey(postID),
	})
	if err != nil {
		return fmt.Errorf("deleting post %s: %w", postID, err)
	}

	return nil
}
