package collection

// NewMemoryRepositories creates empty in-memory recipe, restaurant and user
// repositories for testing. Caller should close all three when done.
func NewMemoryRepositories(opts ...Option) (*RecipeRepository, *RestaurantRepository, *UserRepository) {
	return NewRecipeRepository(NewMemoryPersister(), opts...),
		NewRestaurantRepository(NewMemoryPersister(), opts...),
		NewUserRepository(NewMemoryPersister(), opts...)
}
