// import_categories importa la jerarquía de categorías (raíces e hijas) de un archivo
// JSON o YAML al almacenamiento configurado, sin duplicar las ya existentes.
//
// Uso:
//
//	import_categories run [categorias.json] --company <id> [--dry-run]
//	import_categories find <raíz> [hija] --company <id>
//	import_categories tree --company <id>
//
// La configuración se lee igual que la API (variables de entorno, .env o config.env);
// los flags tienen prioridad.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
