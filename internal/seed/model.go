package seed

// File — один файл фикстур: набор сырых хэш-записей.
type File struct {
	Name    string   `yaml:"name"`
	Records []Record `yaml:"records"`
}

// Record — запись в том виде, в каком она лежит в хранилище: ключ и поля.
// Имена полей — имена хранения (например "Author Name"), не логические.
type Record struct {
	Key    string            `yaml:"key"`
	Fields map[string]string `yaml:"fields"`
}
