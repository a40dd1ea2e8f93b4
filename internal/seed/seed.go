// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tastestack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
}

var (
	dishAdjectives = []string{
		"Crispy", "Roasted", "Smoky", "Creamy", "Spicy", "Zesty", "Rustic", "Classic",
		"Hearty", "Garlicky", "Herbed", "Caramelized", "Charred", "Glazed", "Stuffed",
		"Slow-Cooked", "Pan-Seared", "Grilled", "Braised", "Whipped",
	}

	dishNouns = []string{
		"Chicken Thighs", "Mushroom Risotto", "Lentil Soup", "Beef Stew", "Pancakes",
		"Shakshuka", "Pad Thai", "Carbonara", "Tacos", "Ramen", "Falafel Bowl",
		"Banana Bread", "Apple Pie", "Paella", "Gnocchi", "Curry", "Flatbread",
		"Salmon Fillet", "Potato Gratin", "Chocolate Mousse",
	}

	categories = []string{
		"breakfast", "lunch", "dinner", "dessert", "snack", "baking", "vegetarian",
	}

	difficulties = []string{
		models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard,
	}

	commentOpeners = []string{
		"Made this last night and it was", "My whole family agreed this is",
		"Honestly did not expect it to be", "Substituted the butter with oil and it was still",
		"Five stars, absolutely", "Needs more salt but otherwise",
	}

	commentClosers = []string{
		"delicious!", "a keeper.", "better than the restaurant version.",
		"surprisingly easy.", "going straight into the weeknight rotation.",
		"perfect for meal prep.",
	}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	recipes, err := createRecipes(db, users, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("%d recipes created", len(recipes))

	if err := createInteractions(db, users, recipes); err != nil {
		return fmt.Errorf("failed to create interactions: %w", err)
	}
	log.Println("Seeding complete")

	return nil
}

// ClearAll removes seeded rows in dependency order.
func ClearAll(db *gorm.DB) error {
	tables := []string{"comments", "likes", "ratings", "follows", "recipe_images", "recipes", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func createUsers(db *gorm.DB, n int) ([]models.User, error) {
	// One shared hash keeps seeding fast; every seeded account logs in
	// with the same development password.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Seeded!Passw0rd"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n+1)

	admin := models.User{
		Username: "admin",
		Email:    "admin@tastestack.dev",
		Password: string(hashed),
		IsStaff:  true,
		IsActive: true,
		Bio:      "Keeps the kitchen tidy.",
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			Username:  fmt.Sprintf("%s_%s_%d", strings.ToLower(first), strings.ToLower(last), i),
			Email:     fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Password:  string(hashed),
			FirstName: first,
			LastName:  last,
			Bio:       gofakeit.Sentence(8),
			Location:  gofakeit.City(),
			IsActive:  true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func createRecipes(db *gorm.DB, users []models.User, n int) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0, n)

	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		title := fmt.Sprintf("%s %s",
			dishAdjectives[rand.Intn(len(dishAdjectives))],
			dishNouns[rand.Intn(len(dishNouns))])

		recipe := models.Recipe{
			Title:        title,
			Description:  gofakeit.Paragraph(1, 2, 8, " "),
			Ingredients:  "2 cups flour\n1 tsp salt\n3 tbsp olive oil\n1 onion, diced",
			Instructions: gofakeit.Paragraph(1, 3, 10, "\n"),
			PrepTime:     5 + rand.Intn(40),
			CookTime:     10 + rand.Intn(90),
			Servings:     1 + rand.Intn(8),
			Difficulty:   difficulties[rand.Intn(len(difficulties))],
			Category:     categories[rand.Intn(len(categories))],
			AuthorID:     author.ID,
		}
		if err := db.Create(&recipe).Error; err != nil {
			return nil, err
		}

		if rand.Intn(3) == 0 {
			image := models.RecipeImage{
				RecipeID: recipe.ID,
				URL:      fmt.Sprintf("https://cdn.tastestack.dev/recipes/%d/hero.jpg", recipe.ID),
				Caption:  "Plated and ready to serve",
			}
			if err := db.Create(&image).Error; err != nil {
				return nil, err
			}
		}

		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func createInteractions(db *gorm.DB, users []models.User, recipes []models.Recipe) error {
	for _, recipe := range recipes {
		raters := rand.Intn(len(users)/2 + 1)
		for i := 0; i < raters; i++ {
			user := users[rand.Intn(len(users))]
			rating := models.Rating{
				UserID:   user.ID,
				RecipeID: recipe.ID,
				Rating:   1 + rand.Intn(5),
			}
			// Unique (user, recipe) pairs only; duplicates are skipped.
			if err := db.Where(models.Rating{UserID: user.ID, RecipeID: recipe.ID}).
				FirstOrCreate(&rating).Error; err != nil {
				return err
			}

			if rand.Intn(2) == 0 {
				like := models.Like{UserID: user.ID, RecipeID: recipe.ID}
				if err := db.Where(models.Like{UserID: user.ID, RecipeID: recipe.ID}).
					FirstOrCreate(&like).Error; err != nil {
					return err
				}
			}

			if rand.Intn(3) == 0 {
				comment := models.Comment{
					UserID:   user.ID,
					RecipeID: recipe.ID,
					Content: fmt.Sprintf("%s %s",
						commentOpeners[rand.Intn(len(commentOpeners))],
						commentClosers[rand.Intn(len(commentClosers))]),
					Hidden: rand.Intn(10) == 0,
				}
				if err := db.Create(&comment).Error; err != nil {
					return err
				}
			}
		}
	}

	// Sparse follow graph
	for _, user := range users {
		follows := rand.Intn(5)
		for i := 0; i < follows; i++ {
			target := users[rand.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			follow := models.Follow{FollowerID: user.ID, FollowingID: target.ID}
			if err := db.Where(models.Follow{FollowerID: user.ID, FollowingID: target.ID}).
				FirstOrCreate(&follow).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
