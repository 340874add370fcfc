package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe status values. Drafts are kept out of public feeds by clients;
// published recipes must carry at least one ingredient and one instruction.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Difficulty levels, in ascending order of effort.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Closed vocabularies shared by the feed filters and payload validation.
var (
	CuisineTypes = []string{
		"Italian", "Asian", "American", "Indian", "Mediterranean", "Mexican", "French",
	}
	DifficultyLevels   = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
	DietaryPreferences = []string{"Vegetarian", "Vegan", "Gluten-free", "Dairy-free"}
)

// JSONBStringArray stores a string set as JSONB (text on sqlite).
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Contains reports whether the array holds the given value.
func (a JSONBStringArray) Contains(v string) bool {
	for _, s := range a {
		if s == v {
			return true
		}
	}
	return false
}

// Recipe is a community recipe. Deleting one is permanent: there is no
// soft-delete column on purpose.
type Recipe struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string           `gorm:"size:255;not null" json:"title"`
	Description        string           `gorm:"type:text;not null" json:"description"`
	Image              string           `gorm:"size:512" json:"image"`
	PrepTime           int              `gorm:"not null;default:0" json:"prepTime"`
	CookingTime        int              `gorm:"not null;default:0" json:"cookingTime"`
	Servings           int              `gorm:"not null;default:1" json:"servings"`
	Difficulty         string           `gorm:"size:20;not null" json:"difficulty"`
	Cuisine            string           `gorm:"size:50;not null" json:"cuisine"`
	DietaryPreferences JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietaryPreferences"`
	Tags               JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Likes              int              `gorm:"not null;default:0" json:"likes"`
	Status             string           `gorm:"size:20;not null;default:'draft'" json:"status"`
	AuthorID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"authorId"`
	Author             *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Ingredients        []Ingredient     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Instructions       []Instruction    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient is one row of a recipe's ingredient list. Position preserves
// the order the author entered.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position int       `gorm:"not null" json:"-"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Amount   string    `gorm:"size:50" json:"amount"`
	Unit     string    `gorm:"size:50" json:"unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Instruction is one step of a recipe. Step numbers are 1-based and
// assigned by final position at submission time.
type Instruction struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Step     int       `gorm:"not null" json:"step"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Duration int       `gorm:"not null;default:0" json:"duration"`
}

func (i *Instruction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
