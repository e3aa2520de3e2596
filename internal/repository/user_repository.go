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

type userRepository struct {
	db *database.Client
}

func NewUserRepository(db *database.Client) UserRepository {
	return &userRepository{db: db}
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"class":  &types.AttributeValueMemberS{Value: database.ClassUser},
		"itemID": &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *userRepository) PutUser(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}

	_, err = r.db.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(itemID)"),
	})
	if err != nil {
		return fmt.Errorf("putting user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	out, err := r.db.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table),
		Key:       userKey(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", userID, err)
	}

	if len(out.Item) == 0 {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, fmt.Errorf("unmarshaling user %s: %w", userID, err)
	}

	return &user, nil
}

// QueryByUsername looks a user up through the username secondary index.
// Returns nil without error when no user has that name.
func (r *userRepository) QueryByUsername(ctx context.Context, username string) (*models.User, error) {
	keyCond := expression.Key("class").Equal(expression.Value(database.ClassUser)).
		And(expression.Key("username").Equal(expression.Value(username)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("building username query: %w", err)
	}

	out, err := r.db.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.db.Table),
		IndexName:                 aws.String(r.db.UsernameIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("querying username %s: %w", username, err)
	}

	if len(out.Items) == 0 {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &user); err != nil {
		return nil, fmt.Errorf("unmarshaling user %s: %w", username, err)
	}

	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, attrs ProfileAttributes) error {
	genres := attrs.Genres
	if genres == nil {
		genres = []string{}
	}

	update := expression.
		Set(expression.Name("username"), expression.Value(attrs.Username)).
		Set(expression.Name("bio"), expression.Value(attrs.Bio)).
		Set(expression.Name("genres"), expression.Value(genres)).
		Set(expression.Name("profileImage"), expression.Value(attrs.ProfileImage))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("building profile update: %w", err)
	}

	_, err = r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.db.Table),
		Key:                       userKey(userID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("updating profile of user %s: %w", userID, err)
	}

	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID, role string) error {
	update := expression.Set(expression.Name("role"), expression.Value(role))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("building role update: %w", err)
	}

	_, err = r.db.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.db.Table),
		Key:                       userKey(userID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("updating role of user %s: %w", userID, err)
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.db.DB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table),
		Key:       userKey(userID),
	})
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}

	return nil
}
