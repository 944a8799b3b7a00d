package zodiac

// Gender classifies bodies and signs.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Dual   Gender = "Dual"
)

var bodyGender = [NumBodies]Gender{
	Sun:     Male,
	Moon:    Female,
	Mars:    Male,
	Mercury: Dual,
	Jupiter: Male,
	Venus:   Female,
	Saturn:  Dual,
	Rahu:    Dual,
	Ketu:    Dual,
}

// Gender returns the body's fixed gender.
func (b Body) Gender() Gender {
	return bodyGender[b]
}
