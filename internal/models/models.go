package models

// User is stored in the shared table under class "user".
// The password hash never leaves the backend.
type User struct {
	Class        string   `json:"-" dynamodbav:"class"`
	ItemID       string   `json:"itemID" dynamodbav:"itemID"`
	Username     string   `json:"username" dynamodbav:"username"`
	Password     string   `json:"-" dynamodbav:"password"`
	Role         string   `json:"role" dynamodbav:"role"`
	Bio          string   `json:"bio,omitempty" dynamodbav:"bio"`
	Genres       []string `json:"genres,omitempty" dynamodbav:"genres"`
	ProfileImage string   `json:"profileImage,omitempty" dynamodbav:"profileImage"`
}

// Like is one vote on a post. Like is 1 for a like, -1 for a dislike.
// A post holds at most one Like per user.
type Like struct {
	UserID string `json:"userID" dynamodbav:"userID"`
	Like   int    `json:"like" dynamodbav:"like"`
}

type Reply struct {
	ItemID      string `json:"itemID" dynamodbav:"itemID"`
	PostedBy    string `json:"postedBy" dynamodbav:"postedBy"`
	Description string `json:"description" dynamodbav:"description"`
}

// Post is a song review. Tags are a string set (no duplicates), replies and
// likedBy are DynamoDB lists mutated with list_append / indexed REMOVE.
type Post struct {
	Class       string   `json:"-" dynamodbav:"class"`
	ItemID      string   `json:"itemID" dynamodbav:"itemID"`
	PostedBy    string   `json:"postedBy" dynamodbav:"postedBy"`
	Title       string   `json:"title" dynamodbav:"title"`
	Description string   `json:"description" dynamodbav:"description"`
	Score       int      `json:"score" dynamodbav:"score"`
	IsFlagged   int      `json:"isFlagged" dynamodbav:"isFlagged"`
	Tags        []string `json:"tags,omitempty" dynamodbav:"tags,stringset,omitempty"`
	Replies     []Reply  `json:"replies" dynamodbav:"replies"`
	LikedBy     []Like   `json:"likedBy" dynamodbav:"likedBy"`
}

// HasTag reports set membership, matching the tag-set semantics of the table.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
