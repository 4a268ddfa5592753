package models

type UserProfile struct {
	UserID       string `dynamodbav:"userId" json:"userId"`
	Name         string `dynamodbav:"name" json:"name"`
	EmailID      string `dynamodbav:"emailId" json:"emailId"`
	Role         string `dynamodbav:"role" json:"role"`
	Trade        string `dynamodbav:"trade,omitempty" json:"trade,omitempty"`
	Location     string `dynamodbav:"location,omitempty" json:"location,omitempty"`
	ProfileImage string `dynamodbav:"profileImage,omitempty" json:"profileImage,omitempty"`
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

const UserProfilesTable = "UserProfiles"

// UserSummary is the slimmed profile embedded in chat list entries.
type UserSummary struct {
	UserID       string `json:"userId"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func (p UserProfile) Summary() UserSummary {
	return UserSummary{
		UserID:       p.UserID,
		Name:         p.Name,
		Role:         p.Role,
		ProfileImage: p.ProfileImage,
	}
}
