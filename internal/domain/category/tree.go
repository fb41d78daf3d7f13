// Package category contiene los algoritmos sobre el bosque de categorías:
// prevención de ciclos, hijos directos, descendientes y armado del árbol.
// Opera sobre listas ya cargadas; no depende de persistencia.
package category

import (
	"sort"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// ParentLookup devuelve el ParentID de una categoría y si existe.
type ParentLookup func(id string) (parentID string, ok bool)

// WouldCreateCycle informa si asignar newParentID como padre de id formaría un ciclo.
// Recorre los ancestros de newParentID hacia arriba; si encuentra id, hay ciclo.
// bound limita los pasos (normalmente el total de categorías) para terminar aun si
// los datos ya traen un ciclo; agotar el límite se trata como ciclo.
func WouldCreateCycle(id, newParentID string, parentOf ParentLookup, bound int) bool {
	if newParentID == "" {
		return false
	}
	if newParentID == id {
		return true
	}
	current := newParentID
	for steps := 0; steps <= bound; steps++ {
		parent, ok := parentOf(current)
		if !ok || parent == "" {
			return false
		}
		if parent == id {
			return true
		}
		current = parent
	}
	return true
}

// LookupFromList construye un ParentLookup a partir de una lista de categorías.
func LookupFromList(all []*entity.Category) ParentLookup {
	parents := make(map[string]string, len(all))
	for _, c := range all {
		parents[c.ID] = c.ParentID
	}
	return func(id string) (string, bool) {
		p, ok := parents[id]
		return p, ok
	}
}

// Children devuelve los hijos directos de id ordenados por nombre.
func Children(all []*entity.Category, id string) []*entity.Category {
	out := make([]*entity.Category, 0)
	for _, c := range all {
		if c.ParentID == id && c.ID != id {
			out = append(out, c)
		}
	}
	sortByName(out)
	return out
}

// Descendants devuelve la clausura transitiva de hijos de id (sin incluir id), en
// orden BFS. Tolera ciclos preexistentes: cada categoría se visita una sola vez.
func Descendants(all []*entity.Category, id string) []*entity.Category {
	byParent := indexByParent(all)
	visited := map[string]bool{id: true}
	out := make([]*entity.Category, 0)
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range byParent[current] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out
}

// DescendantIDs igual que Descendants pero solo IDs; incluye id si includeSelf.
func DescendantIDs(all []*entity.Category, id string, includeSelf bool) []string {
	desc := Descendants(all, id)
	ids := make([]string, 0, len(desc)+1)
	if includeSelf {
		ids = append(ids, id)
	}
	for _, c := range desc {
		ids = append(ids, c.ID)
	}
	return ids
}

// Path devuelve la ruta desde la raíz hasta id (inclusive). Vacía si id no existe.
func Path(all []*entity.Category, id string) []*entity.Category {
	byID := make(map[string]*entity.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	var reversed []*entity.Category
	seen := make(map[string]bool)
	for current := id; current != ""; {
		c, ok := byID[current]
		if !ok || seen[current] {
			break
		}
		seen[current] = true
		reversed = append(reversed, c)
		current = c.ParentID
	}
	path := make([]*entity.Category, len(reversed))
	for i, c := range reversed {
		path[len(reversed)-1-i] = c
	}
	return path
}

// Node nodo del árbol de categorías con su profundidad (raíz = 0).
type Node struct {
	Category *entity.Category
	Depth    int
	Children []*Node
}

// BuildTree arma el bosque de categorías. Las categorías cuyo padre no existe se
// tratan como raíces para que ningún registro quede oculto.
func BuildTree(all []*entity.Category) []*Node {
	ids := make(map[string]bool, len(all))
	for _, c := range all {
		ids[c.ID] = true
	}
	byParent := indexByParent(all)
	var roots []*entity.Category
	for _, c := range all {
		if c.ParentID == "" || !ids[c.ParentID] {
			roots = append(roots, c)
		}
	}
	sortByName(roots)
	visited := make(map[string]bool, len(all))
	nodes := make([]*Node, 0, len(roots))
	for _, r := range roots {
		nodes = append(nodes, buildNode(r, 0, byParent, visited))
	}
	// Datos corruptos con ciclo: sin raíz alcanzable, se exponen igual.
	for _, c := range sorted(all) {
		if !visited[c.ID] {
			nodes = append(nodes, buildNode(c, 0, byParent, visited))
		}
	}
	return nodes
}

// Flatten recorre el árbol en preorden (útil para listas con sangría).
func Flatten(nodes []*Node) []*Node {
	var out []*Node
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

func buildNode(c *entity.Category, depth int, byParent map[string][]*entity.Category, visited map[string]bool) *Node {
	visited[c.ID] = true
	n := &Node{Category: c, Depth: depth}
	for _, child := range byParent[c.ID] {
		if visited[child.ID] {
			continue
		}
		n.Children = append(n.Children, buildNode(child, depth+1, byParent, visited))
	}
	return n
}

func indexByParent(all []*entity.Category) map[string][]*entity.Category {
	byParent := make(map[string][]*entity.Category)
	for _, c := range all {
		if c.ParentID == "" || c.ParentID == c.ID {
			continue
		}
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}
	for k := range byParent {
		sortByName(byParent[k])
	}
	return byParent
}

func sorted(all []*entity.Category) []*entity.Category {
	out := make([]*entity.Category, len(all))
	copy(out, all)
	sortByName(out)
	return out
}

func sortByName(list []*entity.Category) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
}
