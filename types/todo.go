package types

type Todo struct {
	Id      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Todos []Todo

type NewTodo struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateTodo struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
