package common

import "fmt"

// RowID is the handle an index stores for a record. It means whatever the
// embedding store says it means, usually a position in its row slice.
type RowID int64

// Person is the sample record used by the examples and the CLI.
type Person struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Age       int    `yaml:"age"`
}

func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p Person) Initials() string {
	var out []rune
	for _, s := range []string{p.FirstName, p.LastName} {
		for _, r := range s {
			out = append(out, r)
			break
		}
	}
	return string(out)
}

// SetAge mutates the record and so can never serve as a key accessor.
func (p *Person) SetAge(age int) {
	p.Age = age
}

// String is for debug output.
func (p Person) String() string {
	return fmt.Sprintf("Person{%s %s, Age: %d}", p.FirstName, p.LastName, p.Age)
}

// SamplePeople is the built-in record set of the CLI.
func SamplePeople() []Person {
	return []Person{
		{FirstName: "Alice", LastName: "Hargreaves", Age: 166},
		{FirstName: "Lorina", LastName: "Liddell", Age: 169},
		{FirstName: "Edith", LastName: "Liddell", Age: 163},
		{FirstName: "Charles", LastName: "Dodgson", Age: 194},
		{FirstName: "Alice", LastName: "Liddell", Age: 166},
		{FirstName: "Reginald", LastName: "Hargreaves", Age: 172},
	}
}
