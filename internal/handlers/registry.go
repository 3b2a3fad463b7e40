package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	ListingHandler   *ListingHandler
	RenterHandler    *RenterHandler
	MatchingHandler  *MatchingHandler
	ReferenceHandler *ReferenceHandler
}
