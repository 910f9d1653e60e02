// Package catalog contiene el índice en memoria usado para reconciliar categorías
// importadas contra las ya persistidas.
package catalog

import (
	"strings"

	"github.com/jhoicas/catalogo/internal/domain/entity"
)

const rootMarker = "root"

// Key es la clave compuesta (padre, nombre) de una categoría dentro del índice.
// ParentID vacío identifica una raíz. Nunca se persiste.
type Key struct {
	ParentID string
	Name     string
}

// RootKey construye la clave de una categoría raíz.
func RootKey(name string) Key {
	return Key{Name: name}
}

// ChildKey construye la clave de una categoría hija del padre indicado.
func ChildKey(parentID, name string) Key {
	return Key{ParentID: parentID, Name: name}
}

// KeyOf calcula la clave de una categoría ya construida.
func KeyOf(c *entity.Category) Key {
	return Key{ParentID: c.ParentID, Name: c.Name}
}

// IsRoot indica si la clave pertenece a una raíz.
func (k Key) IsRoot() bool {
	return k.ParentID == ""
}

// String representa la clave como <padre|root>__<nombre>. Solo para logs.
func (k Key) String() string {
	parent := k.ParentID
	if parent == "" {
		parent = rootMarker
	}
	return parent + "__" + k.Name
}

// Index mapea claves compuestas a categorías (existentes o recién creadas) durante una
// importación. Conserva el orden de inserción para que las búsquedas sean deterministas.
// No es seguro para uso concurrente.
type Index struct {
	entries    map[Key]*entity.Category
	order      []Key
	collisions int
}

// NewIndex crea un índice vacío.
func NewIndex() *Index {
	return &Index{entries: make(map[Key]*entity.Category)}
}

// Len devuelve la cantidad de claves del índice.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Collisions devuelve cuántas veces Put reemplazó una entrada existente.
func (idx *Index) Collisions() int {
	return idx.collisions
}

// Get busca una categoría por clave.
func (idx *Index) Get(k Key) (*entity.Category, bool) {
	c, ok := idx.entries[k]
	return c, ok
}

// Has indica si la clave ya está en el índice.
func (idx *Index) Has(k Key) bool {
	_, ok := idx.entries[k]
	return ok
}

// Put inserta la categoría bajo su clave. Si la clave ya existía gana la última y
// devuelve true.
func (idx *Index) Put(c *entity.Category) (replaced bool) {
	k := KeyOf(c)
	if _, ok := idx.entries[k]; ok {
		idx.collisions++
		idx.entries[k] = c
		return true
	}
	idx.entries[k] = c
	idx.order = append(idx.order, k)
	return false
}

// Delete quita la clave del índice. Se usa para deshacer altas cuyo lote falló.
func (idx *Index) Delete(k Key) {
	if _, ok := idx.entries[k]; !ok {
		return
	}
	delete(idx.entries, k)
	for i, key := range idx.order {
		if key == k {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}

// Categories devuelve las categorías en orden de inserción.
func (idx *Index) Categories() []*entity.Category {
	out := make([]*entity.Category, 0, len(idx.order))
	for _, k := range idx.order {
		out = append(out, idx.entries[k])
	}
	return out
}

// Roots devuelve las categorías raíz en orden de inserción.
func (idx *Index) Roots() []*entity.Category {
	var out []*entity.Category
	for _, k := range idx.order {
		if k.IsRoot() {
			out = append(out, idx.entries[k])
		}
	}
	return out
}

// Children devuelve las hijas de parentID en orden de inserción.
func (idx *Index) Children(parentID string) []*entity.Category {
	var out []*entity.Category
	if parentID == "" {
		return out
	}
	for _, k := range idx.order {
		if k.ParentID == parentID {
			out = append(out, idx.entries[k])
		}
	}
	return out
}

// FindByName busca sin distinguir mayúsculas. Con childName vacío devuelve la primera
// raíz llamada parentName; si no, la primera hija llamada childName de esa raíz.
// Devuelve nil si alguna de las dos búsquedas falla.
func (idx *Index) FindByName(parentName, childName string) *entity.Category {
	var parent *entity.Category
	for _, c := range idx.Categories() {
		if c.IsRoot() && strings.EqualFold(c.Name, parentName) {
			parent = c
			break
		}
	}
	if parent == nil {
		return nil
	}
	if childName == "" {
		return parent
	}
	for _, c := range idx.Categories() {
		if !c.IsRoot() && c.ParentID == parent.ID && strings.EqualFold(c.Name, childName) {
			return c
		}
	}
	return nil
}

// Node es una raíz con sus hijas, para mostrar el árbol importado.
type Node struct {
	Category *entity.Category
	Children []*entity.Category
}

// Tree arma el árbol de dos niveles a partir del índice.
func (idx *Index) Tree() []Node {
	roots := idx.Roots()
	out := make([]Node, 0, len(roots))
	for _, r := range roots {
		out = append(out, Node{Category: r, Children: idx.Children(r.ID)})
	}
	return out
}
