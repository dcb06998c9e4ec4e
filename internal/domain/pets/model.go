package pets

import "time"

// Classification define los tipos de mascota publicables.
// @Enum dog, cat
type Classification string

const (
	ClassificationDog Classification = "dog"
	ClassificationCat Classification = "cat"
)

// DogBreed define las razas de perro aceptadas.
type DogBreed string

const (
	BreedAspin           DogBreed = "aspin"
	BreedLabrador        DogBreed = "labrador"
	BreedGoldenRetriever DogBreed = "golden_retriever"
	BreedGermanShepherd  DogBreed = "german_shepherd"
	BreedBulldog         DogBreed = "bulldog"
	BreedPoodle          DogBreed = "poodle"
	BreedChihuahua       DogBreed = "chihuahua"
	BreedBeagle          DogBreed = "beagle"
	BreedShihTzu         DogBreed = "shih_tzu"
	BreedDogOther        DogBreed = "other"
)

// CatBreed define las razas de gato aceptadas.
type CatBreed string

const (
	BreedPuspin    CatBreed = "puspin"
	BreedPersian   CatBreed = "persian"
	BreedSiamese   CatBreed = "siamese"
	BreedMaineCoon CatBreed = "maine_coon"
	BreedBengal    CatBreed = "bengal"
	BreedSphynx    CatBreed = "sphynx"
	BreedCatOther  CatBreed = "other"
)

// Age define la franja etaria de la mascota.
// @Enum baby, young, teenager, adult
type Age string

const (
	AgeBaby     Age = "baby"
	AgeYoung    Age = "young"
	AgeTeenager Age = "teenager"
	AgeAdult    Age = "adult"
)

// Gender define el sexo de la mascota.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Status define la disponibilidad de la mascota en el marketplace.
// Solo el motor de adopciones (applications) la muta.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

// Municipios soportados (Bataan).
const (
	LocationAbucay      = "Abucay"
	LocationBagac       = "Bagac"
	LocationBalanga     = "Balanga"
	LocationDinalupihan = "Dinalupihan"
	LocationHermosa     = "Hermosa"
	LocationLimay       = "Limay"
	LocationMariveles   = "Mariveles"
	LocationMorong      = "Morong"
	LocationOrani       = "Orani"
	LocationOrion       = "Orion"
	LocationPilar       = "Pilar"
	LocationSamal       = "Samal"
)

// Pet representa una mascota publicada para adopción.
type Pet struct {
	ID          string
	OwnerUserID string

	Name           string
	Classification Classification // dog, cat
	Breed          string         // según classification (DogBreed o CatBreed)
	Age            Age
	Gender         Gender
	Location       string // municipio (ver Location*)

	Status Status

	Description string
	ImageRef    string // referencia opaca al documento subido

	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidClassification(c Classification) bool {
	return c == ClassificationDog || c == ClassificationCat
}

func ValidAge(a Age) bool {
	switch a {
	case AgeBaby, AgeYoung, AgeTeenager, AgeAdult:
		return true
	default:
		return false
	}
}

func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale
}

func ValidLocation(loc string) bool {
	switch loc {
	case LocationAbucay, LocationBagac, LocationBalanga, LocationDinalupihan,
		LocationHermosa, LocationLimay, LocationMariveles, LocationMorong,
		LocationOrani, LocationOrion, LocationPilar, LocationSamal:
		return true
	default:
		return false
	}
}

// ValidBreed valida la raza contra la lista de su classification.
func ValidBreed(c Classification, breed string) bool {
	switch c {
	case ClassificationDog:
		switch DogBreed(breed) {
		case BreedAspin, BreedLabrador, BreedGoldenRetriever, BreedGermanShepherd,
			BreedBulldog, BreedPoodle, BreedChihuahua, BreedBeagle, BreedShihTzu, BreedDogOther:
			return true
		}
	case ClassificationCat:
		switch CatBreed(breed) {
		case BreedPuspin, BreedPersian, BreedSiamese, BreedMaineCoon,
			BreedBengal, BreedSphynx, BreedCatOther:
			return true
		}
	}
	return false
}
