package category

import "errors"

var (
	ErrCategoryNotFound     = errors.New("kategori tidak ditemukan")
	ErrCategoryNameRequired = errors.New("Nama kategori harus diisi")
	ErrCategoryNameTaken    = errors.New("Nama Kategori sudah digunakan")
)

const constraintNameUnique = "categories_name_lower_key"
