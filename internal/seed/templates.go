// Package seed carga el catálogo de plantillas de calificación lineal
// para las razas lecheras soportadas.
package seed

import (
	"context"
	"fmt"

	"cattle-scoring/internal/domain/breeds"
	"cattle-scoring/internal/domain/templates"
)

// BreedNames son las razas que reciben plantilla. El catálogo de categorías
// es el mismo para las tres.
var BreedNames = []string{"BROWN SWISS", "HOLSTEIN", "JERSEY"}

type characteristicSpec struct {
	Name       string
	IdealScore int
	RangeMin   float64
	RangeMax   float64
}

type categorySpec struct {
	Name            string
	Weight          int
	Characteristics []characteristicSpec
}

var catalog = []categorySpec{
	{
		Name:   "Sistema Mamario",
		Weight: 40,
		Characteristics: []characteristicSpec{
			{"Inserción anterior de la ubre", 9, 7, 9},
			{"Colocación de pezon anterior", 5, 4, 6},
			{"Longitud de pezón", 5, 4, 6},
			{"Profundidad de la ubre", 5, 4, 6},
			{"Altura de la ubre posterior", 9, 7, 9},
			{"Ligamentos suspensor medio", 9, 7, 9},
			{"Colocación de pezon posterior", 5, 4, 6},
			{"Anchura de la ubre trasera", 9, 7, 9},
			{"Inclinación de la ubre", 5, 4, 6},
		},
	},
	{
		Name:   "Fuerza Lechera",
		Weight: 20,
		Characteristics: []characteristicSpec{
			{"Angularidad", 9, 7, 9},
			{"Fortaleza", 9, 7, 9},
		},
	},
	{
		Name:   "Patas y Pezuñas",
		Weight: 20,
		Characteristics: []characteristicSpec{
			{"Ángulo de pezuñas", 5, 4, 6},
			{"Patas vista lateral", 5, 4, 6},
			{"Locomoción", 9, 7, 9},
			{"Patas vista posterior", 9, 7, 9},
			{"Coxo femoral", 9, 7, 9},
		},
	},
	{
		Name:   "Tren Anterior y Capacidad",
		Weight: 15,
		Characteristics: []characteristicSpec{
			{"Estatura", 9, 7, 9},
			{"Profundidad", 9, 7, 9},
			{"Condición corporal", 5, 4, 6},
		},
	},
	{
		Name:   "Grupa",
		Weight: 5,
		Characteristics: []characteristicSpec{
			{"Ángulo de la grupa", 5, 4, 6},
			{"Ancho de la grupa", 9, 7, 9},
		},
	},
}

// Templates asegura que existan las razas del catálogo y reemplaza la
// plantilla de cada una. Reemplaza en vez de mezclar para que volver a
// sembrar deje siempre un estado limpio.
func Templates(ctx context.Context, breedsSvc *breeds.Service, templatesSvc *templates.Service) error {
	for _, name := range BreedNames {
		breed, err := breedsSvc.GetByName(ctx, name)
		if err != nil {
			breed, err = breedsSvc.Create(ctx, breeds.CreateInput{Name: name})
			if err != nil {
				return fmt.Errorf("creando raza %s: %w", name, err)
			}
		}

		categories := make([]templates.CreateCategoryInput, 0, len(catalog))
		characteristics := make(map[string][]templates.CreateCharacteristicInput, len(catalog))
		for _, cat := range catalog {
			idealTotal := 0
			chars := make([]templates.CreateCharacteristicInput, 0, len(cat.Characteristics))
			for _, ch := range cat.Characteristics {
				idealTotal += ch.IdealScore
				chars = append(chars, templates.CreateCharacteristicInput{
					Name:       ch.Name,
					IdealScore: ch.IdealScore,
					RangeMin:   ch.RangeMin,
					RangeMax:   ch.RangeMax,
				})
			}
			categories = append(categories, templates.CreateCategoryInput{
				Name:       cat.Name,
				Weight:     cat.Weight,
				IdealTotal: idealTotal,
			})
			characteristics[cat.Name] = chars
		}

		if err := templatesSvc.ReplaceForBreed(ctx, breed.ID, categories, characteristics); err != nil {
			return fmt.Errorf("sembrando plantilla de %s: %w", name, err)
		}
	}
	return nil
}
