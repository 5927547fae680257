package typegraph

// Root and scalar classes.
var (
	Object = &Class{name: "Object"}
	String = &Class{name: "String", super: Object}

	Int     = newScalar("int", KindInt, false)
	Long    = newScalar("long", KindLong, false)
	Float   = newScalar("float", KindFloat, false)
	Double  = newScalar("double", KindDouble, false)
	Boolean = newScalar("boolean", KindBoolean, false)

	IntBox     = newScalar("Integer", KindInt, true)
	LongBox    = newScalar("Long", KindLong, true)
	FloatBox   = newScalar("Float", KindFloat, true)
	DoubleBox  = newScalar("Double", KindDouble, true)
	BooleanBox = newScalar("Boolean", KindBoolean, true)
)

// Collection hierarchy. Only the parts needed to find List<E> from a concrete
// collection class are modelled.
var (
	iterableT = Param("T")
	Iterable  = NewClass("Iterable", AsInterface(), WithParams(iterableT))

	collectionE = Param("E")
	Collection  = NewClass("Collection", AsInterface(), WithParams(collectionE),
		Implements(Of(Iterable, collectionE)))

	listE = Param("E")
	List  = NewClass("List", AsInterface(), WithParams(listE),
		Implements(Of(Collection, listE)))

	abstractCollectionE = Param("E")
	AbstractCollection  = NewClass("AbstractCollection", WithParams(abstractCollectionE),
		Implements(Of(Collection, abstractCollectionE)))

	abstractListE = Param("E")
	AbstractList  = NewClass("AbstractList", WithParams(abstractListE),
		Extends(Of(AbstractCollection, abstractListE)),
		Implements(Of(List, abstractListE)))

	arrayListE = Param("E")
	ArrayList  = NewClass("ArrayList", WithParams(arrayListE),
		Extends(Of(AbstractList, arrayListE)),
		Implements(Of(List, arrayListE)))
)

// ListOf returns List<elem>.
func ListOf(elem Type) *Parameterized { return Of(List, elem) }

// Box returns the nullable wrapper of a primitive class, or c itself.
func Box(c *Class) *Class {
	switch c {
	case Int:
		return IntBox
	case Long:
		return LongBox
	case Float:
		return FloatBox
	case Double:
		return DoubleBox
	case Boolean:
		return BooleanBox
	default:
		return c
	}
}
