package catalog

var items = []Item{
	{ID: "big_mac", Name: "Big Mac", Price: 2, Category: CategoryFood, Description: "McDonald's signature burger"},
	{ID: "flip_flops", Name: "Flip Flops", Price: 3, Category: CategoryClothing, Description: "Simple summer footwear"},
	{ID: "coca_cola_pack", Name: "Coca-Cola Pack", Price: 5, Category: CategoryFood, Description: "12-pack of Coca-Cola"},
	{ID: "movie_ticket", Name: "Movie Ticket", Price: 12, Category: CategoryEntertainment, Description: "Cinema ticket"},
	{ID: "book", Name: "Book", Price: 15, Category: CategoryEducation, Description: "Paperback novel"},
	{ID: "lobster_dinner", Name: "Lobster Dinner", Price: 45, Category: CategoryFood, Description: "Fine dining experience"},
	{ID: "video_game", Name: "Video Game", Price: 60, Category: CategoryEntertainment, Description: "AAA video game"},
	{ID: "amazon_echo", Name: "Amazon Echo", Price: 99, Category: CategoryTechnology, Description: "Smart speaker"},
	{ID: "year_of_netflix", Name: "Year of Netflix", Price: 100, Category: CategoryEntertainment, Description: "Annual subscription"},
	{ID: "air_jordans", Name: "Air Jordans", Price: 125, Category: CategoryClothing, Description: "Nike basketball shoes"},
	{ID: "airpods", Name: "Airpods", Price: 199, Category: CategoryTechnology, Description: "Wireless earbuds"},
	{ID: "gaming_console", Name: "Gaming Console", Price: 299, Category: CategoryTechnology, Description: "PlayStation or Xbox"},
	{ID: "drone", Name: "Drone", Price: 350, Category: CategoryTechnology, Description: "Camera drone"},
	{ID: "smartphone", Name: "Smartphone", Price: 699, Category: CategoryTechnology, Description: "Latest iPhone"},
	{ID: "bike", Name: "Bike", Price: 800, Category: CategoryTransportation, Description: "Mountain bike"},
	{ID: "kitten", Name: "Kitten", Price: 1_500, Category: CategoryPets, Description: "Adorable kitten"},
	{ID: "puppy", Name: "Puppy", Price: 1_500, Category: CategoryPets, Description: "Golden retriever puppy"},
	{ID: "auto_rickshaw", Name: "Auto Rickshaw", Price: 2_300, Category: CategoryTransportation, Description: "Three-wheeled vehicle"},
	{ID: "horse", Name: "Horse", Price: 2_500, Category: CategoryAnimals, Description: "Thoroughbred horse"},
	{ID: "acre_of_farmland", Name: "Acre of Farmland", Price: 3_000, Category: CategoryRealEstate, Description: "Agricultural land"},
	{ID: "designer_handbag", Name: "Designer Handbag", Price: 5_500, Category: CategoryLuxury, Description: "Louis Vuitton bag"},
	{ID: "hot_tub", Name: "Hot Tub", Price: 6_000, Category: CategoryHome, Description: "Jacuzzi hot tub"},
	{ID: "luxury_wine", Name: "Luxury Wine", Price: 7_000, Category: CategoryLuxury, Description: "Vintage wine bottle"},
	{ID: "diamond_ring", Name: "Diamond Ring", Price: 10_000, Category: CategoryLuxury, Description: "1-carat diamond ring"},
	{ID: "jet_ski", Name: "Jet Ski", Price: 12_000, Category: CategoryRecreation, Description: "Personal watercraft"},
	{ID: "rolex", Name: "Rolex", Price: 15_000, Category: CategoryLuxury, Description: "Luxury watch"},
	{ID: "ford_f150", Name: "Ford F-150", Price: 30_000, Category: CategoryVehicles, Description: "Pickup truck"},
	{ID: "tesla", Name: "Tesla", Price: 75_000, Category: CategoryVehicles, Description: "Electric car"},
	{ID: "monster_truck", Name: "Monster Truck", Price: 150_000, Category: CategoryVehicles, Description: "Giant truck"},
	{ID: "ferrari", Name: "Ferrari", Price: 250_000, Category: CategoryVehicles, Description: "Italian sports car"},
	{ID: "single_family_home", Name: "Single Family Home", Price: 300_000, Category: CategoryRealEstate, Description: "Suburban house"},
	{ID: "lamborghini_aventador", Name: "Lamborghini Aventador", Price: 500_000, Category: CategoryVehicles, Description: "An Italian supercar with a V12 engine"},
	{ID: "gold_bar", Name: "Gold Bar", Price: 700_000, Category: CategoryInvestment, Description: "1kg gold bar"},
	{ID: "mcdonalds_franchise", Name: "McDonalds Franchise", Price: 1_500_000, Category: CategoryBusiness, Description: "Fast food franchise"},
	{ID: "superbowl_ad", Name: "Superbowl Ad", Price: 5_250_000, Category: CategoryMarketing, Description: "30-second commercial"},
	{ID: "yacht", Name: "Yacht", Price: 7_500_000, Category: CategoryVehicles, Description: "A 50-meter luxury yacht"},
	{ID: "m1_abrams", Name: "M1 Abrams", Price: 8_000_000, Category: CategoryMilitary, Description: "Main battle tank"},
	{ID: "formula_1_car", Name: "Formula 1 Car", Price: 15_000_000, Category: CategoryVehicles, Description: "Racing car"},
	{ID: "apache_helicopter", Name: "Apache Helicopter", Price: 31_000_000, Category: CategoryMilitary, Description: "Attack helicopter"},
	{ID: "mansion", Name: "Mansion", Price: 45_000_000, Category: CategoryRealEstate, Description: "Luxury estate"},
	{ID: "make_a_movie", Name: "Make a Movie", Price: 100_000_000, Category: CategoryEntertainment, Description: "Hollywood production"},
	{ID: "boeing_747", Name: "Boeing 747", Price: 148_000_000, Category: CategoryVehicles, Description: "Jumbo jet"},
	{ID: "mona_lisa", Name: "Mona Lisa", Price: 780_000_000, Category: CategoryArt, Description: "Priceless artwork"},
	{ID: "skyscraper", Name: "Skyscraper", Price: 850_000_000, Category: CategoryRealEstate, Description: "Downtown office building"},
	{ID: "cruise_ship", Name: "Cruise Ship", Price: 930_000_000, Category: CategoryVehicles, Description: "Luxury cruise liner"},
	{ID: "nba_team", Name: "NBA Team", Price: 2_120_000_000, Category: CategoryBusiness, Description: "Professional basketball team"},
}
