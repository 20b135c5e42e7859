package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DishType classifies a recipe by course
type DishType string

const (
	DishTypeSoup       DishType = "soup"
	DishTypeMainCourse DishType = "main-course"
	DishTypeDessert    DishType = "dessert"
	DishTypeDrink      DishType = "drink"
	DishTypeBreakfast  DishType = "breakfast"
)

// DishTypes lists every known dish type
var DishTypes = []DishType{DishTypeSoup, DishTypeMainCourse, DishTypeDessert, DishTypeDrink, DishTypeBreakfast}

// Valid reports whether t is a known dish type
func (t DishType) Valid() bool {
	for _, known := range DishTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Meat is the primary meat of a recipe
type Meat string

const (
	MeatPoultry Meat = "poultry"
	MeatBeef    Meat = "beef"
	MeatPork    Meat = "pork"
	MeatSeafood Meat = "seafood"
	MeatNone    Meat = "none"
)

// Meats lists every known meat category
var Meats = []Meat{MeatPoultry, MeatBeef, MeatPork, MeatSeafood, MeatNone}

// Valid reports whether m is a known meat category
func (m Meat) Valid() bool {
	for _, known := range Meats {
		if m == known {
			return true
		}
	}
	return false
}

// Diet is the dietary label of a recipe
type Diet string

const (
	DietVegan      Diet = "vegan"
	DietVegetarian Diet = "vegetarian"
	DietKeto       Diet = "keto"
	DietNone       Diet = "none"
)

// Diets lists every known diet label
var Diets = []Diet{DietVegan, DietVegetarian, DietKeto, DietNone}

// Valid reports whether d is a known diet
func (d Diet) Valid() bool {
	for _, known := range Diets {
		if d == known {
			return true
		}
	}
	return false
}

// Allergen is an allergen a recipe contains
type Allergen string

const (
	AllergenGluten    Allergen = "gluten"
	AllergenNuts      Allergen = "nuts"
	AllergenDairy     Allergen = "dairy"
	AllergenEggs      Allergen = "eggs"
	AllergenSoy       Allergen = "soy"
	AllergenFish      Allergen = "fish"
	AllergenShellfish Allergen = "shellfish"
)

// Allergens lists every known allergen
var Allergens = []Allergen{AllergenGluten, AllergenNuts, AllergenDairy, AllergenEggs, AllergenSoy, AllergenFish, AllergenShellfish}

// Valid reports whether a is a known allergen
func (a Allergen) Valid() bool {
	for _, known := range Allergens {
		if a == known {
			return true
		}
	}
	return false
}

// Ingredient is a named ingredient with a free-form amount ("200g", "2 szt.")
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("ingredient name is required")
	}
	return nil
}

// Comment is a user comment attached to a recipe
type Comment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    Date   `json:"date"`
}

// DateLayout is the calendar date format used by recipes and comments
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, serialized as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate builds a date in UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
