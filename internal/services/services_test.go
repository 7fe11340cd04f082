package services

import (
	"testing"

	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/anonto42/foodgram/backend/internal/testutil"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	recipes  *RecipeService
	follows  *FollowService
	users    *UserService
	shopping *ShoppingListService
	catalog  *CatalogService
	guard    *RelationshipGuard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	users := repositories.NewPostgresUserRepository(db)
	follows := repositories.NewPostgresFollowRepository(db)
	favorites := repositories.NewPostgresFavoriteRepository(db)
	cart := repositories.NewPostgresShoppingCartRepository(db)
	tags := repositories.NewPostgresTagRepository(db)
	ingredients := repositories.NewPostgresIngredientRepository(db)
	recipes := repositories.NewPostgresRecipeRepository(db)
	guard := NewRelationshipGuard(users, follows, favorites, cart)

	return &fixture{
		db:       db,
		recipes:  NewRecipeService(recipes, tags, ingredients, follows, favorites, cart, guard),
		follows:  NewFollowService(users, follows, recipes, guard),
		users:    NewUserService(users, follows),
		shopping: NewShoppingListService(cart),
		catalog:  NewCatalogService(tags, ingredients),
		guard:    guard,
	}
}
